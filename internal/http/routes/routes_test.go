package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-docstore-api/internal/http/handlers/home"
	"github.com/aanand-mishra/students-docstore-api/internal/storage/memory"
	"github.com/aanand-mishra/students-docstore-api/internal/types"
	"github.com/aanand-mishra/students-docstore-api/internal/validation"
)

const annJSON = `{"student_name":"Ann","student_dob":"2000-01-01","student_gender":"Female","student_email":"ann@x.com","student_phone":"1234567890"}`

func newServer(t *testing.T) (*httptest.Server, *memory.Memory) {
	t.Helper()
	store := memory.New()
	srv := httptest.NewServer(New(store, validation.New()))
	t.Cleanup(srv.Close)
	return srv, store
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHome(t *testing.T) {
	srv, _ := newServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, home.Welcome, string(body))

	resp, _ = do(t, http.MethodGet, srv.URL+"/nowhere", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateThenFetch(t *testing.T) {
	srv, _ := newServer(t)

	resp, body := do(t, http.MethodPut, srv.URL+"/students", annJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)

	resp, body = do(t, http.MethodGet, srv.URL+"/students/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"`+created.ID+`",`+annJSON[1:], string(body))

	resp, body = do(t, http.MethodGet, srv.URL+"/students", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":"`+created.ID+`",`+annJSON[1:]+`]`, string(body))
}

func TestUpdateWithUnknownGenderLeavesDocument(t *testing.T) {
	srv, store := newServer(t)
	ctx := context.Background()

	id, err := store.CreateStudent(ctx, types.Student{
		Name: "Ann", DOB: "2000-01-01", Gender: "Female", Email: "ann@x.com", Phone: "1234567890",
	})
	require.NoError(t, err)
	before, err := store.GetStudentByID(ctx, id)
	require.NoError(t, err)

	body := strings.Replace(annJSON, `"Female"`, `"Unknown"`, 1)
	resp, raw := do(t, http.MethodPost, srv.URL+"/students/"+id, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"status":"error","error":"Invalid student gender"}`, string(raw))

	after, err := store.GetStudentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	srv, _ := newServer(t)

	_, body := do(t, http.MethodPut, srv.URL+"/students", annJSON)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	bob := `{"student_name":"Bob","student_dob":"1999-12-31","student_gender":"Male","student_email":"bob@y.org","student_phone":"0987654321"}`
	resp, _ := do(t, http.MethodPost, srv.URL+"/students/"+created.ID, bob)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = do(t, http.MethodGet, srv.URL+"/students/"+created.ID, "")
	assert.JSONEq(t, `{"id":"`+created.ID+`",`+bob[1:], string(body))
}

func TestUpdateMissingIDUpserts(t *testing.T) {
	srv, _ := newServer(t)

	resp, _ := do(t, http.MethodPost, srv.URL+"/students/brand-new", annJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, http.MethodGet, srv.URL+"/students/brand-new", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"brand-new",`+annJSON[1:], string(body))
}

func TestMissingIDs(t *testing.T) {
	srv, _ := newServer(t)

	resp, _ := do(t, http.MethodGet, srv.URL+"/students/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := do(t, http.MethodDelete, srv.URL+"/students/missing", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Student record deleted successfully"}`, string(body))
}

func TestDeleteThenFetch(t *testing.T) {
	srv, _ := newServer(t)

	_, body := do(t, http.MethodPut, srv.URL+"/students", annJSON)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	resp, _ := do(t, http.MethodDelete, srv.URL+"/students/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/students/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateWithNumericPhoneStoresText(t *testing.T) {
	srv, _ := newServer(t)

	body := strings.Replace(annJSON, `"1234567890"`, `1234567890`, 1)
	resp, raw := do(t, http.MethodPut, srv.URL+"/students", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))

	_, raw = do(t, http.MethodGet, srv.URL+"/students/"+created.ID, "")
	assert.JSONEq(t, `{"id":"`+created.ID+`",`+annJSON[1:], string(raw))
}

func TestMissingNameReportedBeforeOtherFields(t *testing.T) {
	srv, _ := newServer(t)

	resp, raw := do(t, http.MethodPut, srv.URL+"/students", `{"student_phone":1234567890}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"status":"error","error":"Invalid student name"}`, string(raw))
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newServer(t)

	resp, _ := do(t, http.MethodPost, srv.URL+"/students", annJSON)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = do(t, http.MethodPut, srv.URL+"/students/abc", annJSON)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
