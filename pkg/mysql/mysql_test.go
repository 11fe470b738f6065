package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gormLogger "gorm.io/gorm/logger"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(Config{Host: "db", Port: "3306", User: "market", Password: "secret", Name: "market"})

	assert.Equal(t,
		"market:secret@tcp(db:3306)/market?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true", dsn)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gormLogger.Silent, logLevel("silent"))
	assert.Equal(t, gormLogger.Error, logLevel("ERROR"))
	assert.Equal(t, gormLogger.Info, logLevel("info"))
	assert.Equal(t, gormLogger.Warn, logLevel(""))
}
