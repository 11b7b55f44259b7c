package cron

import (
	"context"

	"github.com/Dias221467/FF_Points/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartAuditCron runs the points auditor on schedule. The returned cron must
// be stopped on shutdown.
func StartAuditCron(auditor *jobs.PointsAuditor, schedule string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if _, err := auditor.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Points audit failed")
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logrus.WithField("schedule", schedule).Info("Points audit scheduled")
	return c, nil
}
