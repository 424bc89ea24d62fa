// Package jobs provides scheduled background tasks.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(maintenanceJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Maintenance
//
// MaintenanceJob runs the retention sweep of every tenant at most once per
// store-local day. The day of the last successful sweep is kept in the local
// state file, so restarts do not repeat it. A failed sweep leaves the marker
// untouched and is retried on the next tick.
package jobs
