package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvDefaults(t *testing.T) {
	t.Setenv("MAZE_ROWS", "12")
	t.Setenv("WORLD_WIDTH", "1024.5")

	assert.Equal(t, 12, getEnvAsIntWithDefault("MAZE_ROWS", 10))
	assert.Equal(t, 14, getEnvAsIntWithDefault("MAZE_COLS_UNSET_FOR_TEST", 14))
	assert.Equal(t, 1024.5, getEnvAsFloatWithDefault("WORLD_WIDTH", 840))
	assert.Equal(t, "maze:won", getEnvWithDefault("REDIS_CHANNEL_UNSET_FOR_TEST", "maze:won"))
}

func TestInitConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REST_PORT", "9090")
	t.Setenv("MAZE_COLS", "7")
	t.Setenv("JWT_ISSUER", "maze-test")

	c := initConfig()
	assert.Equal(t, "secret", c.JWTSecret)
	assert.Equal(t, 9090, c.RESTPort)
	assert.Equal(t, 7, c.MazeCols)
	assert.Equal(t, "maze-test", c.JWTIssuer)
}
