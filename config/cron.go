package config

import (
	"shipshare.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"statswarm": {Schedule: "@every 10m", Job: jobs.StatsWarmJob},
	// Add more jobs here
}
