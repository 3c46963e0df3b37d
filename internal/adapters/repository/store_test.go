package repository

import (
	"context"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"transitlab/internal/domain/search"
	"transitlab/internal/domain/types"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an in-memory job store", t, func() {
		store := NewInMemoryStore()

		Convey("When creating a job", func() {
			err := store.CreateJob(ctx, "job-1", 3)
			So(err, ShouldBeNil)

			Convey("Then it is visible and running", func() {
				snap, err := store.Job(ctx, "job-1")
				So(err, ShouldBeNil)
				So(snap.JobID, ShouldEqual, "job-1")
				So(snap.Status, ShouldEqual, types.JobRunning)
				So(snap.Expected, ShouldEqual, 3)
				So(snap.Evaluated, ShouldEqual, 0)
				So(snap.Candidates, ShouldBeEmpty)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("Then creating it again fails", func() {
				err := store.CreateJob(ctx, "job-1", 3)
				So(err, ShouldWrap, ErrJobExists)
			})
		})

		Convey("When creating a job with invalid arguments", func() {
			So(store.CreateJob(ctx, "", 3), ShouldNotBeNil)
			So(store.CreateJob(ctx, "job-x", 0), ShouldNotBeNil)
		})

		Convey("When recording results", func() {
			So(store.CreateJob(ctx, "job-2", 3), ShouldBeNil)

			done, err := store.RecordResult(ctx, "job-2", search.Result{Period: 3.0, RMSError: 0.02, Score: 40})
			So(err, ShouldBeNil)
			So(done, ShouldBeFalse)

			done, err = store.RecordResult(ctx, "job-2", search.Result{Period: 4.05, RMSError: 0, Score: 100})
			So(err, ShouldBeNil)
			So(done, ShouldBeFalse)

			Convey("Then the final result completes the job", func() {
				done, err = store.RecordResult(ctx, "job-2", search.Result{Period: 6.1, RMSError: 0.03, Score: 25})
				So(err, ShouldBeNil)
				So(done, ShouldBeTrue)

				snap, err := store.Job(ctx, "job-2")
				So(err, ShouldBeNil)
				So(snap.Status, ShouldEqual, types.JobComplete)
				So(snap.Evaluated, ShouldEqual, 3)

				Convey("And candidates come back ranked best-first", func() {
					So(snap.Candidates, ShouldHaveLength, 3)
					So(snap.Candidates[0].Rank, ShouldEqual, 1)
					So(snap.Candidates[0].Period, ShouldEqual, 4.05)
					So(snap.Candidates[0].Score, ShouldEqual, 100)
					So(snap.Candidates[1].Period, ShouldEqual, 3.0)
					So(snap.Candidates[2].Period, ShouldEqual, 6.1)
					So(snap.Candidates[2].Rank, ShouldEqual, 3)
				})

				Convey("And recording past completion fails", func() {
					_, err := store.RecordResult(ctx, "job-2", search.Result{Period: 9.2, Score: 10})
					So(err, ShouldWrap, ErrJobComplete)
				})
			})
		})

		Convey("When scores tie", func() {
			So(store.CreateJob(ctx, "job-tie", 2), ShouldBeNil)
			_, _ = store.RecordResult(ctx, "job-tie", search.Result{Period: 8.0, Score: 60})
			_, _ = store.RecordResult(ctx, "job-tie", search.Result{Period: 2.0, Score: 60})

			Convey("Then the shorter period ranks first", func() {
				snap, err := store.Job(ctx, "job-tie")
				So(err, ShouldBeNil)
				So(snap.Candidates[0].Period, ShouldEqual, 2.0)
				So(snap.Candidates[1].Period, ShouldEqual, 8.0)
			})
		})

		Convey("When querying an unknown job", func() {
			_, err := store.Job(ctx, "missing")
			So(err, ShouldWrap, ErrJobNotFound)

			_, err = store.RecordResult(ctx, "missing", search.Result{})
			So(err, ShouldWrap, ErrJobNotFound)
		})
	})
}

func TestInMemoryStoreEviction(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store bounded to two jobs", t, func() {
		store := NewInMemoryStore(WithMaxJobs(2))

		So(store.CreateJob(ctx, "job-a", 1), ShouldBeNil)
		So(store.CreateJob(ctx, "job-b", 1), ShouldBeNil)
		So(store.CreateJob(ctx, "job-c", 1), ShouldBeNil)

		Convey("Then the oldest job is evicted", func() {
			So(store.Count(ctx), ShouldEqual, 2)

			_, err := store.Job(ctx, "job-a")
			So(err, ShouldWrap, ErrJobNotFound)

			_, err = store.Job(ctx, "job-b")
			So(err, ShouldBeNil)
			_, err = store.Job(ctx, "job-c")
			So(err, ShouldBeNil)
		})
	})
}

func TestInMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()

	Convey("Given many goroutines recording into one job", t, func() {
		store := NewInMemoryStore()
		const n = 100
		So(store.CreateJob(ctx, "job-conc", n), ShouldBeNil)

		var wg sync.WaitGroup
		doneCount := make(chan bool, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				done, err := store.RecordResult(ctx, "job-conc", search.Result{
					Period: float64(i) + 0.5,
					Score:  float64(i),
				})
				if err != nil {
					t.Errorf("record result %d: %v", i, err)
				}
				doneCount <- done
			}(i)
		}
		wg.Wait()
		close(doneCount)

		Convey("Then exactly one result completed the job", func() {
			completions := 0
			for d := range doneCount {
				if d {
					completions++
				}
			}
			So(completions, ShouldEqual, 1)

			snap, err := store.Job(ctx, "job-conc")
			So(err, ShouldBeNil)
			So(snap.Status, ShouldEqual, types.JobComplete)
			So(snap.Candidates, ShouldHaveLength, n)
			So(snap.Candidates[0].Score, ShouldEqual, float64(n-1))
			for i, c := range snap.Candidates {
				So(c.Rank, ShouldEqual, i+1)
			}
		})
	})
}
