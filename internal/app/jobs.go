package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/beacondyn/beaconstore/internal/domain"
	"github.com/beacondyn/beaconstore/internal/events"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	// Periodic catalog refresh: the change bus covers edits made through
	// this process, the cron tick covers rows changed behind its back.
	refreshSpec := a.appConfig.Storefront.RefreshCron
	if refreshSpec == "" {
		refreshSpec = "@every 10m"
	}
	_, err := a.sched.AddFunc(refreshSpec, func() {
		events.PublishProductsChanged()
		events.PublishCategoriesChanged()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		days := a.configManager.GetInt64("system", "OprLogRetentionDays")
		if days <= 0 {
			days = 365
		}
		a.gormDB.
			Where("opt_time < ? ", time.Now().
				Add(-time.Hour*24*time.Duration(days))).Delete(domain.SysOprLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// WriteOprLog records an admin action in the audit table.
func (a *Application) WriteOprLog(oprName, action, desc string) {
	err := a.gormDB.Create(&domain.SysOprLog{
		OprName:   oprName,
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}).Error
	if err != nil {
		zap.L().Error("failed to write operator log", zap.Error(err))
	}
}
