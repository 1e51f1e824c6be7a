package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ScheduleTime is a time of day at which scheduled work should run.
type ScheduleTime struct {
	Hour   int
	Minute int
}

// ParseScheduleTime parses "HH:MM" into a ScheduleTime.
func ParseScheduleTime(s string) (ScheduleTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ScheduleTime{}, fmt.Errorf("invalid schedule time %q, expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ScheduleTime{}, fmt.Errorf("invalid hour in schedule time %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ScheduleTime{}, fmt.Errorf("invalid minute in schedule time %q", s)
	}

	return ScheduleTime{Hour: hour, Minute: minute}, nil
}

func (st ScheduleTime) String() string {
	return fmt.Sprintf("%02d:%02d", st.Hour, st.Minute)
}

// Scheduler runs a set of jobs at one or more configured times each day,
// dispatching them through a worker pool.
type Scheduler struct {
	pool          *WorkerPool
	scheduleTimes []ScheduleTime
	jobProvider   func() []Job
	lastRuns      map[string]string // schedule time -> last run date
	mu            sync.Mutex
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// NewScheduler creates a scheduler that asks jobProvider for the jobs to run
// each time a schedule fires.
func NewScheduler(pool *WorkerPool, scheduleTimes []ScheduleTime, jobProvider func() []Job) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		pool:          pool,
		scheduleTimes: scheduleTimes,
		jobProvider:   jobProvider,
		lastRuns:      make(map[string]string),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start launches the worker pool and the schedule loop.
func (s *Scheduler) Start(runOnStartup bool) {
	s.pool.Start()

	if runOnStartup {
		log.Println("Scheduler: Running jobs on startup")
		s.runJobs()
	}

	s.wg.Add(1)
	go s.scheduleLoop()

	log.Printf("Scheduler started with times: %v", s.scheduleTimes)
}

func (s *Scheduler) scheduleLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			log.Println("Scheduler: Schedule loop stopping")
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.runJobs()
			}
		}
	}
}

// shouldRun reports whether a scheduled time has been reached and its jobs
// have not already run today.
func (s *Scheduler) shouldRun(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := now.Format("2006-01-02")
	for _, st := range s.scheduleTimes {
		if now.Hour() != st.Hour || now.Minute() != st.Minute {
			continue
		}
		if s.lastRuns[st.String()] == today {
			continue
		}
		s.lastRuns[st.String()] = today
		return true
	}
	return false
}

func (s *Scheduler) runJobs() {
	jobs := s.jobProvider()
	if len(jobs) == 0 {
		log.Println("Scheduler: No jobs to run")
		return
	}

	log.Printf("Scheduler: Dispatching %d jobs", len(jobs))
	s.pool.SubmitBatch(jobs)
}

// TriggerNow runs the jobs immediately, outside the daily schedule.
func (s *Scheduler) TriggerNow() {
	log.Println("Scheduler: Manual trigger")
	s.runJobs()
}

// NextScheduledTime returns the next time any schedule will fire.
func (s *Scheduler) NextScheduledTime(now time.Time) time.Time {
	var next time.Time
	for _, st := range s.scheduleTimes {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), st.Hour, st.Minute, 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	return next
}

// Shutdown stops the schedule loop and drains the worker pool.
func (s *Scheduler) Shutdown(timeout time.Duration) {
	log.Println("Scheduler: Shutting down")

	s.cancel()
	s.wg.Wait()

	s.pool.ShutdownWithTimeout(timeout)

	log.Println("Scheduler: Shutdown complete")
}
