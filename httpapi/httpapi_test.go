package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/callbacks"
	"github.com/effective-security/finmcp/httpapi"
	"github.com/effective-security/finmcp/mocks/mockadapters"
	"github.com/effective-security/finmcp/mocks/mockstore"
	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/finmcp/onboarding"
	"github.com/effective-security/finmcp/store"
	"github.com/effective-security/finmcp/tools"
	"github.com/effective-security/finmcp/tools/fintech"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	extractor *mockadapters.MockExtractor
	store     store.Store
	journal   *callbacks.Journal
	router    *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		extractor: mockadapters.NewMockExtractor(ctrl),
		store:     store.NewMemoryStore(),
		journal:   callbacks.NewJournal(callbacks.ModeDefault, 10),
	}
	reg := tools.NewRegistry(f.journal)
	require.NoError(t, fintech.Register(reg, fintech.Deps{
		Onboarding: onboarding.New(f.extractor, f.store, f.store, nil),
	}))
	f.router = httpapi.NewRouter(httpapi.New(f.store, reg, f.journal))
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestClients(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/clients", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	_, err := f.store.UpsertClient(ctx, model.NewClient("C1", &model.KycDetail{DocumentType: model.DocumentTypePAN, DocumentID: "X1"}))
	require.NoError(t, err)
	_, err = f.store.UpsertClient(ctx, model.NewClient("C2", nil))
	require.NoError(t, err)

	w = f.do(t, http.MethodGet, "/clients", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "C2", list[0].ID)
	assert.Equal(t, "C1", list[1].ID)
	assert.Equal(t, model.KycStatusFailed, list[0].KycStatus)
	assert.Empty(t, list[0].KycDetails)

	w = f.do(t, http.MethodGet, "/clients/C1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kycStatus":"COMPLETED"`)

	w = f.do(t, http.MethodGet, "/clients/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Client not found with ID: unknown"}`, w.Body.String())
}

func TestLeads(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/leads/9876543210", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Lead not found with contact: 9876543210"}`, w.Body.String())

	w = f.do(t, http.MethodPost, "/leads", `{"firstName":"Anil","contactNumber":"9876543210"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var lead model.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))
	assert.Positive(t, lead.ID)
	assert.Equal(t, model.LeadStatusNew, lead.Status)

	w = f.do(t, http.MethodPost, "/leads", `{"id":5,"status":"onboarded","contactNumber":"111"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodPost, "/leads", `{"firstName":"NoContact"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/leads", `{"id":-1,"contactNumber":"222"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/leads/9876543210", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"firstName":"Anil"`)

	w = f.do(t, http.MethodGet, "/leads", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, lead.ID, list[0].ID)
}

func TestTools(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []httpapi.ToolInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "ClientOnboarding", list[0].Name)
	assert.Equal(t, "GetClient", list[1].Name)
	assert.NotNil(t, list[0].Parameters)

	f.extractor.EXPECT().Extract(gomock.Any(), "C9").Return(&model.KycDetail{DocumentType: model.DocumentTypeVoterID, DocumentID: "V9"}, nil)
	w = f.do(t, http.MethodPost, "/tools/ClientOnboarding", `{"clientId":"C9"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res tools.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Failed())
	assert.JSONEq(t, `{"clientId":"C9","status":"SUCCESS","message":"Onboarding successful."}`, string(res.Output))

	w = f.do(t, http.MethodPost, "/tools/GetClient", `{"clientId":"nobody"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)

	w = f.do(t, http.MethodPost, "/tools/GetClient", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/tools/Transfer", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"tool_not_found"`)

	w = f.do(t, http.MethodGet, "/tools/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats callbacks.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, uint32(1), stats.NotFound)
	assert.Equal(t, []callbacks.ToolStats{
		{Tool: "ClientOnboarding", Calls: 1, Succeeded: 1},
		{Tool: "GetClient", Calls: 2, Failed: 2},
	}, stats.Tools)

	w = f.do(t, http.MethodGet, "/tools/log", "")
	require.Equal(t, http.StatusOK, w.Code)
	var log struct {
		Entries []string `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &log))
	require.Len(t, log.Entries, 7)
	assert.Contains(t, log.Entries[0], "ClientOnboarding *** Tool Start ***")
	assert.Contains(t, log.Entries[6], "Transfer *** Tool Not Found ***")
}

func TestToolFormats(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/tools?format=yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Tools:\n    - Name: ClientOnboarding\n"), w.Body.String())
	assert.Contains(t, w.Body.String(), "- Name: GetClient")

	w = f.do(t, http.MethodGet, "/tools?format=prompt", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\n```json\n"))
	assert.Contains(t, w.Body.String(), `"Name": "GetClient"`)

	w = f.do(t, http.MethodGet, "/tools?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"unsupported format: xml"}`, w.Body.String())
}

func TestCallTool_TooLarge(t *testing.T) {
	f := newFixture(t)
	body := `{"clientId":"` + strings.Repeat("1", 1<<20) + `"}`
	w := f.do(t, http.MethodPost, "/tools/GetClient", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"arguments too large"}`, w.Body.String())
}

func TestStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstore.NewMockStore(ctrl)
	router := httpapi.NewRouter(httpapi.New(st, tools.NewRegistry(nil), nil))

	st.EXPECT().ListClients(gomock.Any()).Return(nil, errors.New("connection refused"))
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/tools/stats", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tools":[],"notFound":0}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/tools/log", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entries":[]}`, w.Body.String())
}
