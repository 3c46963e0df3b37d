package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"transitlab/internal/adapters/http/api"
	"transitlab/internal/adapters/repository"
	service "transitlab/internal/app"
	"transitlab/internal/domain/fitscore"
	"transitlab/internal/domain/habitability"
	"transitlab/internal/domain/model"
	"transitlab/internal/domain/phasefold"
	"transitlab/internal/domain/search"
	"transitlab/internal/domain/transit"
	"transitlab/internal/domain/types"
)

// stubDeps implements api.Dependencies with the real domain kernels and a
// scripted search layer.
type stubDeps struct {
	submitJobID     string
	submitDuplicate bool
	submitErr       error
	jobSnapshot     repository.JobSnapshot
	jobErr          error

	lastSubmit search.Request
}

func (s *stubDeps) Curve(_ context.Context, times []float64, params transit.Params) ([]float64, error) {
	return transit.Curve(times, params)
}

func (s *stubDeps) Fold(_ context.Context, series model.TimeSeries, period float64) (model.PhaseSeries, error) {
	return phasefold.FoldSeries(series, period)
}

func (s *stubDeps) FitScore(_ context.Context, observed, modeled []float64) (fitscore.Result, error) {
	return fitscore.Score(observed, modeled)
}

func (s *stubDeps) Habitability(_ context.Context, tempC float64) habitability.Assessment {
	return habitability.Assess(habitability.Planet{TempC: tempC})
}

func (s *stubDeps) Planets(_ context.Context) []habitability.Assessment {
	return habitability.AssessAll(habitability.TRAPPIST1())
}

func (s *stubDeps) SubmitSearch(_ context.Context, req search.Request) (string, bool, error) {
	s.lastSubmit = req
	return s.submitJobID, s.submitDuplicate, s.submitErr
}

func (s *stubDeps) SearchJob(_ context.Context, jobID string) (repository.JobSnapshot, error) {
	return s.jobSnapshot, s.jobErr
}

func (s *stubDeps) Report(_ context.Context, station string) (string, error) {
	if station == "" {
		station = "default-station"
	}
	return "REPORT FOR " + station, nil
}

func (s *stubDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(deps *stubDeps) *httptest.Server {
	srv := api.NewServer(deps, deps)
	mux := http.NewServeMux()
	srv.Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestCurveEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &stubDeps{}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When posting a valid curve request", func() {
			resp := postJSON(t, ts.URL+"/curve", map[string]any{
				"times":        []float64{0, 0.5, 1.0, 1.5, 2.0},
				"radius_ratio": 0.1,
				"period_days":  2.0,
				"width_factor": 10,
			})

			Convey("Then it returns the synthesized flux", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[map[string][]float64](t, resp)
				So(body["flux"], ShouldHaveLength, 5)
			})
		})

		Convey("When posting invalid parameters", func() {
			resp := postJSON(t, ts.URL+"/curve", map[string]any{
				"times":        []float64{0, 1},
				"radius_ratio": 0.1,
				"period_days":  -1.0,
				"width_factor": 10,
			})
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(ts.URL+"/curve", "application/json", bytes.NewReader([]byte("{")))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(ts.URL + "/curve")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestFoldEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &stubDeps{}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When folding times with flux", func() {
			resp := postJSON(t, ts.URL+"/fold", map[string]any{
				"times":       []float64{0, 1, 2, 3},
				"flux":        []float64{1, 0.99, 1, 0.99},
				"period_days": 2.0,
			})

			Convey("Then phases and flux come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[map[string][]float64](t, resp)
				So(body["phases"], ShouldHaveLength, 4)
				So(body["flux"], ShouldHaveLength, 4)
				So(body["phases"][0], ShouldEqual, 0)
				So(body["phases"][1], ShouldEqual, 0.5)
			})
		})

		Convey("When folding times without flux", func() {
			resp := postJSON(t, ts.URL+"/fold", map[string]any{
				"times":       []float64{0, 1, 2, 3},
				"period_days": 2.0,
			})

			Convey("Then only phases come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[map[string][]float64](t, resp)
				So(body["phases"], ShouldHaveLength, 4)
				So(body["flux"], ShouldBeEmpty)
			})
		})

		Convey("When the period is invalid", func() {
			resp := postJSON(t, ts.URL+"/fold", map[string]any{
				"times":       []float64{0, 1},
				"period_days": 0,
			})
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestFitEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &stubDeps{}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When scoring a perfect fit", func() {
			resp := postJSON(t, ts.URL+"/fit", map[string]any{
				"observed": []float64{1, 0.99, 1},
				"modeled":  []float64{1, 0.99, 1},
			})

			Convey("Then the score is 100", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[map[string]float64](t, resp)
				So(body["score"], ShouldEqual, 100.0)
				So(body["rms_error"], ShouldEqual, 0.0)
			})
		})

		Convey("When shapes mismatch", func() {
			resp := postJSON(t, ts.URL+"/fit", map[string]any{
				"observed": []float64{1, 0.99},
				"modeled":  []float64{1},
			})
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHabitabilityEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &stubDeps{}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When querying an Earth-like temperature", func() {
			resp, err := http.Get(ts.URL + "/habitability?temp_c=15")
			So(err, ShouldBeNil)

			Convey("Then the score peaks", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[map[string]any](t, resp)
				So(body["score"], ShouldEqual, 1.0)
				So(body["verdict"], ShouldEqual, "excellent")
				So(body["temp_c"], ShouldEqual, 15.0)
			})
		})

		Convey("When the temperature is missing", func() {
			resp, err := http.Get(ts.URL + "/habitability")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestPlanetsEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &stubDeps{}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When listing planets", func() {
			resp, err := http.Get(ts.URL + "/planets")
			So(err, ShouldBeNil)

			Convey("Then the full catalog is assessed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[[]habitability.Assessment](t, resp)
				So(body, ShouldHaveLength, 7)
				So(body[2].Planet.Name, ShouldEqual, "TRAPPIST-1d")
				So(body[2].Score, ShouldEqual, 1.0)
			})
		})
	})
}

func TestSearchEndpoints(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &stubDeps{submitJobID: "job-abc"}
		ts := newTestServer(deps)
		defer ts.Close()

		validBody := map[string]any{
			"request_id":        "req-1",
			"times":             []float64{0, 1, 2},
			"flux":              []float64{1, 0.99, 1},
			"candidate_periods": []float64{2.0, 4.05},
			"radius_ratio":      0.1,
			"width_factor":      10,
		}

		Convey("When submitting a search", func() {
			resp := postJSON(t, ts.URL+"/search", validBody)

			Convey("Then it is accepted with a job id", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
				body := decode[map[string]any](t, resp)
				So(body["job_id"], ShouldEqual, "job-abc")
				So(body["status"], ShouldEqual, "accepted")
				So(deps.lastSubmit.RequestID, ShouldEqual, "req-1")
				So(deps.lastSubmit.Candidates, ShouldResemble, []float64{2.0, 4.05})
			})
		})

		Convey("When the submission duplicates an earlier request", func() {
			deps.submitDuplicate = true
			resp := postJSON(t, ts.URL+"/search", validBody)

			Convey("Then the original job is returned with 200", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[map[string]any](t, resp)
				So(body["job_id"], ShouldEqual, "job-abc")
				So(body["duplicate"], ShouldEqual, true)
			})
		})

		Convey("When the queue pushes back", func() {
			deps.submitErr = service.ErrBackpressure
			resp := postJSON(t, ts.URL+"/search", validBody)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusTooManyRequests)
		})

		Convey("When the request is invalid", func() {
			deps.submitErr = model.ErrInvalidParameter
			resp := postJSON(t, ts.URL+"/search", validBody)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When polling a job", func() {
			deps.jobSnapshot = repository.JobSnapshot{
				JobID:  "job-abc",
				Status: types.JobComplete,
				Candidates: []types.Candidate{
					{Rank: 1, Period: 4.05, RMSError: 0, Score: 100},
				},
			}
			resp, err := http.Get(ts.URL + "/search/job-abc")
			So(err, ShouldBeNil)

			Convey("Then the snapshot is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[repository.JobSnapshot](t, resp)
				So(body.Status, ShouldEqual, types.JobComplete)
				So(body.Candidates, ShouldHaveLength, 1)
				So(body.Candidates[0].Period, ShouldEqual, 4.05)
			})
		})

		Convey("When polling an unknown job", func() {
			deps.jobErr = repository.ErrJobNotFound
			resp, err := http.Get(ts.URL + "/search/missing")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When polling with an empty job id", func() {
			resp, err := http.Get(ts.URL + "/search/")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestReportEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &stubDeps{}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When requesting the report", func() {
			resp, err := http.Get(ts.URL + "/report?team=NightShift")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then plain text comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldStartWith, "text/plain")
				buf := new(bytes.Buffer)
				_, _ = buf.ReadFrom(resp.Body)
				So(buf.String(), ShouldEqual, "REPORT FOR NightShift")
			})
		})
	})
}

func TestStatsAndHealthEndpoints(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &stubDeps{}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When requesting stats", func() {
			resp, err := http.Get(ts.URL + "/stats")
			So(err, ShouldBeNil)

			Convey("Then service stats are returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[map[string]any](t, resp)
				So(body["started"], ShouldEqual, true)
			})
		})

		Convey("When requesting health", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the metrics exposition is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
