package jobs

import (
	"encoding/json"
	"log"
	"sync"

	"gorm.io/gorm"

	"shipshare.GO/core/cache"
	allocationRepo "shipshare.GO/model/repository/allocation"
	allocationService "shipshare.GO/service/allocation"
)

var (
	providerMu sync.Mutex
	dbProvider func() (*gorm.DB, error)
)

// SetDBProvider wires the database factory for jobs. Called once from main;
// jobs log and skip when it is not set (config cannot be imported here, the
// job table lives there).
func SetDBProvider(fn func() (*gorm.DB, error)) {
	providerMu.Lock()
	defer providerMu.Unlock()
	dbProvider = fn
}

func openDB() (*gorm.DB, error) {
	providerMu.Lock()
	fn := dbProvider
	providerMu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn()
}

// StatsWarmJob precomputes the unfiltered overview rollup into the stats
// cache so the first dashboard hit after an idle period is served warm. Read
// only; allocation writes stay request-scoped.
func StatsWarmJob(args ...string) {
	db, err := openDB()
	if err != nil {
		log.Printf("statswarm: db: %v", err)
		return
	}
	if db == nil {
		log.Println("statswarm: no db provider, skipping")
		return
	}

	repo := allocationRepo.NewAllocationRepository(db)
	stats, err := repo.Statistics("", "")
	if err != nil {
		log.Printf("statswarm: %v", err)
		return
	}

	body, err := json.Marshal(map[string]interface{}{"success": true, "data": stats})
	if err != nil {
		log.Printf("statswarm: %v", err)
		return
	}
	cache.GetInstance().Set("stats:overview||", body, 600, []string{allocationService.StatsCacheTag})
	log.Printf("statswarm: cached overview (%d records)", stats.TotalRecords)
}
