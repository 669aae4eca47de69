package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/okian/squadbook/internal/adapters/http/api"
	service "github.com/okian/squadbook/internal/app"
	"github.com/okian/squadbook/internal/domain/model"
	"github.com/okian/squadbook/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type rosterEntry struct {
	summary    model.PlayerSummary
	department string
	status     string
}

// fakeStore is an in-memory stand-in for the player and match stores.
type fakeStore struct {
	roster  []rosterEntry
	matches []*model.Match
	readErr error
	saveErr error
	pingErr error
}

func (f *fakeStore) Departments(context.Context) ([]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []string
	seen := map[string]bool{}
	for _, e := range f.roster {
		if !seen[e.department] {
			seen[e.department] = true
			out = append(out, e.department)
		}
	}
	return out, nil
}

func (f *fakeStore) ActivePlayers(_ context.Context, department string) ([]model.PlayerSummary, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := []model.PlayerSummary{}
	for _, e := range f.roster {
		if strings.EqualFold(e.department, department) && e.status == model.StatusActive {
			out = append(out, e.summary)
		}
	}
	return out, nil
}

func (f *fakeStore) MatchingDepartments(_ context.Context, names []string) ([]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []string
	for _, e := range f.roster {
		for _, n := range names {
			if strings.EqualFold(e.department, n) {
				out = append(out, e.department)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) InsertMatch(_ context.Context, m *model.Match) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.matches = append(f.matches, m)
	return nil
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func entry(name, role, department, status string) rosterEntry {
	return rosterEntry{
		summary:    model.PlayerSummary{Name: name, Role: role, ID: primitive.NewObjectID()},
		department: department,
		status:     status,
	}
}

func newTestRouter(store *fakeStore) http.Handler {
	srv := api.NewServer(
		service.NewQueryService(store),
		service.NewSubmissionService(store, store),
		store,
	)
	r := chi.NewRouter()
	r.Use(api.RequestID)
	srv.Register(context.Background(), r)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = primitive.NewObjectID().Hex()
	}
	return out
}

func teamBody(deptA string, playersA []string, deptB string, playersB []string) string {
	body := map[string]any{
		"teamA": map[string]any{"department": deptA, "players": playersA},
		"teamB": map[string]any{"department": deptB, "players": playersB},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

type errorBody struct {
	Success *bool  `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeError(rec *httptest.ResponseRecorder) errorBody {
	var body errorBody
	So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
	return body
}

func TestDepartmentsEndpoint(t *testing.T) {
	Convey("Given a roster with two departments", t, func() {
		store := &fakeStore{roster: []rosterEntry{
			entry("Alice", "Batsman", "CS", model.StatusActive),
			entry("Bob", "Bowler", "CS", "Inactive"),
			entry("Carol", "Keeper", "EE", model.StatusActive),
		}}
		h := newTestRouter(store)

		Convey("GET /api/departments lists them", func() {
			rec := do(h, http.MethodGet, "/api/departments", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")

			var got []string
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldResemble, []string{"CS", "EE"})
		})

		Convey("An empty store yields an empty array", func() {
			store.roster = nil
			rec := do(h, http.MethodGet, "/api/departments", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(rec.Body.String()), ShouldEqual, "[]")
		})

		Convey("A store failure is a 500 carrying the cause", func() {
			store.readErr = errors.New("connection refused")
			rec := do(h, http.MethodGet, "/api/departments", "")
			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			body := decodeError(rec)
			So(body.Message, ShouldEqual, "Failed to fetch departments")
			So(body.Error, ShouldContainSubstring, "connection refused")
		})

		Convey("Every response carries a request ID", func() {
			rec := do(h, http.MethodGet, "/api/departments", "")
			So(rec.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})
	})
}

func TestPlayersEndpoint(t *testing.T) {
	Convey("Given a roster with active and inactive players", t, func() {
		alice := entry("Alice", "Batsman", "CS", model.StatusActive)
		store := &fakeStore{roster: []rosterEntry{
			alice,
			entry("Bob", "Bowler", "CS", "Inactive"),
			entry("Carol", "Keeper", "EE", model.StatusActive),
			entry("Dan", "Bowler", "R&D", model.StatusActive),
		}}
		h := newTestRouter(store)

		Convey("GET /api/players/cs returns only Alice", func() {
			rec := do(h, http.MethodGet, "/api/players/cs", "")
			So(rec.Code, ShouldEqual, http.StatusOK)

			var got []map[string]string
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0]["Name"], ShouldEqual, "Alice")
			So(got[0]["Role"], ShouldEqual, "Batsman")
			So(got[0]["_id"], ShouldEqual, alice.summary.ID.Hex())
		})

		Convey("Escaped department names are decoded", func() {
			rec := do(h, http.MethodGet, "/api/players/R%26D", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "Dan")
		})

		Convey("A department with no active players is a 404", func() {
			rec := do(h, http.MethodGet, "/api/players/ME", "")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
			body := decodeError(rec)
			So(body.Message, ShouldEqual, "No active players found for this department")
		})

		Convey("A store failure is a 500", func() {
			store.readErr = errors.New("socket closed")
			rec := do(h, http.MethodGet, "/api/players/CS", "")
			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			body := decodeError(rec)
			So(body.Message, ShouldEqual, "Server error while fetching players")
			So(body.Error, ShouldContainSubstring, "socket closed")
		})
	})
}

func TestTeamEndpoint(t *testing.T) {
	Convey("Given departments CS and EE", t, func() {
		store := &fakeStore{roster: []rosterEntry{
			entry("Alice", "Batsman", "CS", model.StatusActive),
			entry("Carol", "Keeper", "EE", model.StatusActive),
		}}
		h := newTestRouter(store)

		Convey("A valid submission is recorded", func() {
			rec := do(h, http.MethodPost, "/api/team", teamBody("CS", ids(11), "EE", ids(11)))
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				MatchID string `json:"matchId"`
				TeamA   string `json:"teamA"`
				TeamB   string `json:"teamB"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body.Success, ShouldBeTrue)
			So(body.Message, ShouldEqual, "Teams submitted successfully!")
			So(body.MatchID, ShouldHaveLength, 24)
			So(body.TeamA, ShouldEqual, "CS")
			So(body.TeamB, ShouldEqual, "EE")
			So(store.matches, ShouldHaveLength, 1)
			So(store.matches[0].ID.Hex(), ShouldEqual, body.MatchID)
		})

		Convey("A team of ten players is a 400", func() {
			rec := do(h, http.MethodPost, "/api/team", teamBody("CS", ids(10), "EE", ids(11)))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			body := decodeError(rec)
			So(body.Message, ShouldStartWith, "Invalid team structure")
			So(store.matches, ShouldBeEmpty)
		})

		Convey("A missing team is a 400", func() {
			rec := do(h, http.MethodPost, "/api/team", `{"teamA":{"department":"CS","players":[]}}`)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(rec).Message, ShouldEqual, "Both teams are required")
		})

		Convey("An unknown department is a 400", func() {
			rec := do(h, http.MethodPost, "/api/team", teamBody("CS", ids(11), "ME", ids(11)))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(rec).Message, ShouldEqual, "One or both departments are invalid")
		})

		Convey("A malformed body is a 400", func() {
			rec := do(h, http.MethodPost, "/api/team", `{"teamA":`)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(rec).Code, ShouldEqual, "bad_request")
		})

		Convey("Wrongly typed players are a 400", func() {
			rec := do(h, http.MethodPost, "/api/team", `{"teamA":{"department":"CS","players":"x"},"teamB":{}}`)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A persistence failure is a 500 with success false", func() {
			store.saveErr = errors.New("write failed")
			rec := do(h, http.MethodPost, "/api/team", teamBody("CS", ids(11), "EE", ids(11)))
			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			body := decodeError(rec)
			So(body.Success, ShouldNotBeNil)
			So(*body.Success, ShouldBeFalse)
			So(body.Message, ShouldEqual, "Failed to save teams")
			So(body.Error, ShouldContainSubstring, "write failed")
		})

		Convey("GET is not routed to the submission handler", func() {
			rec := do(h, http.MethodGet, "/api/team", "")
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestHealthAndMetrics(t *testing.T) {
	Convey("Given a router over a reachable store", t, func() {
		store := &fakeStore{}
		h := newTestRouter(store)

		Convey("/healthz reports ok", func() {
			rec := do(h, http.MethodGet, "/healthz", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("/healthz reports 503 when the store is down", func() {
			store.pingErr = errors.New("no reachable servers")
			rec := do(h, http.MethodGet, "/healthz", "")
			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(decodeError(rec).Error, ShouldContainSubstring, "no reachable servers")
		})

		Convey("/metrics exposes request counters", func() {
			do(h, http.MethodGet, "/healthz", "")
			rec := do(h, http.MethodGet, "/metrics", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "squadbook_api_http_requests_total")
		})
	})
}
