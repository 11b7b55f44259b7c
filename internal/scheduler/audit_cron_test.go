package cron

import (
	"testing"

	"github.com/Dias221467/FF_Points/internal/jobs"
	"github.com/Dias221467/FF_Points/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAuditCron(t *testing.T) {
	auditor := jobs.NewPointsAuditor(memory.NewUserRepository(), memory.NewCompletionRepository(true), memory.NewPointLogRepository())

	c, err := StartAuditCron(auditor, "@daily")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()

	_, err = StartAuditCron(auditor, "not a schedule")
	assert.Error(t, err)
}
