package database

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	ID   uint
	Name string
}

func TestOpen(t *testing.T) {
	{ // In memory
		db, err := Open(Memory(), zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, db.AutoMigrate(&probe{}))
		require.NoError(t, db.Create(&probe{Name: "a"}).Error)
		var n int64
		require.NoError(t, db.Model(&probe{}).Count(&n).Error)
		assert.Equal(t, int64(1), n)
		assert.NoError(t, Close(db))
	}
	{ // File backed
		path := filepath.Join(t.TempDir(), "tunnel.db")
		db, err := Open(Config{Driver: "SQLite", Path: path}, zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, db.AutoMigrate(&probe{}))
		assert.NoError(t, Close(db))
	}
	{ // Misconfiguration
		_, err := Open(Config{Driver: Postgres}, zerolog.Nop())
		assert.Error(t, err)
		_, err = Open(Config{Driver: "oracle"}, zerolog.Nop())
		assert.Error(t, err)
	}
}
