// Command apiserver exposes a read-only ops surface over the coopmatch
// store: liveness and a summary of the active jobs and match results
// currently in the store.
// It is not the job-browsing presentation layer — that stays out of scope
// per the automation spec — it exists for process supervision, the same
// role the teacher's cmd/server filled.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oclaw/coopmatch/internal/config"
	"github.com/oclaw/coopmatch/internal/store"
)

func main() {
	cfgPath := os.Getenv("COOPMATCH_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/stats", func(c *gin.Context) { handleStats(c, st, cfg) })

	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Printf("apiserver listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("apiserver: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("apiserver: graceful shutdown failed: %v", err)
	}
}

func handleStats(c *gin.Context, st *store.Store, cfg *config.Config) {
	ctx := c.Request.Context()

	jobs, err := st.ListActiveJobs(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	results, err := st.ListMatchResults(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var passing int
	for _, r := range results {
		if r.FitScore >= cfg.MinMatchScore {
			passing++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"active_jobs":      len(jobs),
		"scored_jobs":      len(results),
		"passing_min_score": passing,
		"min_match_score":  cfg.MinMatchScore,
	})
}
