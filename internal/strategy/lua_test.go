package strategy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicemate/dicemate/internal/domain"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLua_BasicBet(t *testing.T) {
	path := writeScript(t, `
function next_bet()
  return { amount = 1.5, chance = 49.5, high = true }
end
`)
	s, err := NewLua(Params{"script": path})
	require.NoError(t, err)

	ctx := testCtx()
	s.OnSessionStart(ctx)

	spec, err := s.NextBet(ctx)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, domain.GameThreshold, spec.Kind)
	assert.True(t, spec.Amount.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, spec.Chance.Equal(decimal.RequireFromString("49.5")))
	assert.True(t, spec.High)
}

func TestLua_NilStopsSession(t *testing.T) {
	path := writeScript(t, `
function next_bet()
  if profit >= 2 then
    return nil
  end
  return { amount = 1, chance = 49.5 }
end
`)
	s, err := NewLua(Params{"script": path})
	require.NoError(t, err)

	ctx := testCtx()
	s.OnSessionStart(ctx)

	spec, err := s.NextBet(ctx)
	require.NoError(t, err)
	require.NotNil(t, spec)

	s.OnBetResult(winResult("102"))

	spec, err = s.NextBet(ctx)
	require.NoError(t, err)
	assert.Nil(t, spec)
}

func TestLua_StateGlobals(t *testing.T) {
	path := writeScript(t, `
function next_bet()
  if lossstreak >= 2 then
    return { amount = 4, chance = 49.5 }
  end
  return { amount = 1, chance = 49.5 }
end
`)
	s, err := NewLua(Params{"script": path})
	require.NoError(t, err)

	ctx := testCtx()
	s.OnSessionStart(ctx)

	s.OnBetResult(lossResult("99"))
	s.OnBetResult(lossResult("98"))

	spec, err := s.NextBet(ctx)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.True(t, spec.Amount.Equal(decimal.NewFromInt(4)))

	s.OnBetResult(winResult("100"))

	spec, err = s.NextBet(ctx)
	require.NoError(t, err)
	assert.True(t, spec.Amount.Equal(decimal.NewFromInt(1)))
}

func TestLua_MissingNextBet(t *testing.T) {
	path := writeScript(t, `x = 1`)
	_, err := NewLua(Params{"script": path})
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
}

func TestLua_MissingScriptParam(t *testing.T) {
	_, err := NewLua(Params{})
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
}

func TestLua_BadReturnValue(t *testing.T) {
	path := writeScript(t, `
function next_bet()
  return "not a table"
end
`)
	s, err := NewLua(Params{"script": path})
	require.NoError(t, err)

	_, err = s.NextBet(testCtx())
	assert.Error(t, err)
}

func TestLua_InvalidSpecFromScript(t *testing.T) {
	path := writeScript(t, `
function next_bet()
  return { amount = -1, chance = 49.5 }
end
`)
	s, err := NewLua(Params{"script": path})
	require.NoError(t, err)

	_, err = s.NextBet(testCtx())
	assert.ErrorIs(t, err, domain.ErrInvalidStake)
}

func TestLua_StandardLibrariesAvailable(t *testing.T) {
	path := writeScript(t, `
function next_bet()
  local amounts = {3, 1, 2}
  table.sort(amounts)
  local amount = math.min(amounts[1], 5)
  local chance = tonumber(string.format("%.1f", 49.5))
  return { amount = amount, chance = chance }
end
`)
	s, err := NewLua(Params{"script": path})
	require.NoError(t, err)

	spec, err := s.NextBet(testCtx())
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.True(t, spec.Amount.Equal(decimal.NewFromInt(1)))
	assert.True(t, spec.Chance.Equal(decimal.RequireFromString("49.5")))
}

func TestLua_SandboxStripsFileAccess(t *testing.T) {
	path := writeScript(t, `
function next_bet()
  if dofile ~= nil or loadfile ~= nil or require ~= nil then
    return { amount = 999, chance = 49.5 }
  end
  return { amount = 1, chance = 49.5 }
end
`)
	s, err := NewLua(Params{"script": path})
	require.NoError(t, err)

	spec, err := s.NextBet(testCtx())
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.True(t, spec.Amount.Equal(decimal.NewFromInt(1)))
}
