package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/kursverwaltung/internal/app/controllers"
	"github.com/yigit/kursverwaltung/internal/app/repositories"
	"github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/app/views"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	router *gin.Engine
	svc    *services.Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repositories.NewMemoryRecordStore("https://example.test/rest")
	repos := repositories.NewRepositories(store, repositories.DefaultAppIDs)
	svc := services.NewServices(repos, func() time.Time { return testNow })

	tmpl, err := views.Templates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	SetupRouter(router, Controllers{
		Dashboard:   controllers.NewDashboardController(svc),
		Dozenten:    controllers.NewDozentController(svc.Dozenten),
		Raeume:      controllers.NewRaumController(svc.Raeume),
		Teilnehmer:  controllers.NewTeilnehmerController(svc.Teilnehmer),
		Kurse:       controllers.NewKursController(svc.Kurse),
		Anmeldungen: controllers.NewAnmeldungController(svc.Anmeldungen),
	})
	return &testEnv{router: router, svc: svc}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func createID(t *testing.T, e *testEnv, path, body string) string {
	t.Helper()
	rec := e.do(http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		RecordID string `json:"record_id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	require.NotEmpty(t, created.RecordID)
	return created.RecordID
}

// seedCourse creates one Dozent, Raum, Teilnehmer and Kurs through the API
func seedCourse(t *testing.T, e *testEnv) (teilnehmerID, kursID string) {
	t.Helper()
	dozentID := createID(t, e, "/api/v1/dozenten", `{"name":"Ada","email":"ada@example.de"}`)
	raumID := createID(t, e, "/api/v1/raeume", `{"raumname":"101","gebaeude":"A","kapazitaet":20}`)
	teilnehmerID = createID(t, e, "/api/v1/teilnehmer", `{"name":"Lena","email":"lena@example.de"}`)
	kursID = createID(t, e, "/api/v1/kurse", `{
		"titel":"Go","startdatum":"2024-07-01","enddatum":"2024-07-05",
		"max_teilnehmer":10,"preis":490,"dozent_id":"`+dozentID+`","raum_id":"`+raumID+`"}`)
	return teilnehmerID, kursID
}

func TestAPIDozentCRUD(t *testing.T) {
	e := newTestEnv(t)

	id := createID(t, e, "/api/v1/dozenten", `{"name":"Ada","email":"ada@example.de","telefon":"030 1"}`)

	rec := e.do(http.MethodGet, "/api/v1/dozenten/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"telefon":"030 1"`)

	rec = e.do(http.MethodPut, "/api/v1/dozenten/"+id, `{"name":"Ada L.","email":"ada@example.de"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Dozent aktualisiert", decode(t, rec).Message)

	rec = e.do(http.MethodGet, "/api/v1/dozenten/"+id, "")
	assert.NotContains(t, rec.Body.String(), "telefon")
	assert.Contains(t, rec.Body.String(), "Ada L.")

	rec = e.do(http.MethodDelete, "/api/v1/dozenten/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodGet, "/api/v1/dozenten/"+id, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "RES_001", decode(t, rec).Error.Code)
}

func TestAPIErrors(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"validation", http.MethodPost, "/api/v1/dozenten", `{"name":"","email":"nope"}`, http.StatusUnprocessableEntity, "VAL_001"},
		{"malformed body", http.MethodPost, "/api/v1/raeume", `{"kapazitaet":"viele"`, http.StatusBadRequest, "VAL_002"},
		{"invalid id", http.MethodGet, "/api/v1/teilnehmer/abc", "", http.StatusBadRequest, "VAL_002"},
		{"unknown id", http.MethodDelete, "/api/v1/raeume/aaaaaaaaaaaaaaaaaaaaaaaa", "", http.StatusNotFound, "RES_001"},
		{"missing prerequisites", http.MethodPost, "/api/v1/kurse", `{"titel":"Go"}`, http.StatusConflict, "RES_004"},
		{"anmeldung without data", http.MethodPost, "/api/v1/anmeldungen", `{}`, http.StatusConflict, "RES_004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			env := decode(t, rec)
			require.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestAPIValidationDetails(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodPost, "/api/v1/dozenten", `{"name":"Ada","email":"nope"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Error.Details, &details))
	require.Len(t, details, 1)
	assert.Equal(t, "email", details[0].Field)
	assert.Equal(t, "Bitte eine gültige E-Mail-Adresse angeben", details[0].Message)
}

func TestAPIListPagination(t *testing.T) {
	e := newTestEnv(t)
	for _, name := range []string{"A", "B", "C"} {
		createID(t, e, "/api/v1/raeume", `{"raumname":"`+name+`","gebaeude":"H","kapazitaet":5}`)
	}

	rec := e.do(http.MethodGet, "/api/v1/raeume", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []json.RawMessage
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &all))
	assert.Len(t, all, 3)

	rec = e.do(http.MethodGet, "/api/v1/raeume?page=2&size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items      []json.RawMessage `json:"items"`
		Pagination struct {
			CurrentPage int   `json:"currentPage"`
			TotalPages  int   `json:"totalPages"`
			TotalItems  int64 `json:"totalItems"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.EqualValues(t, 3, page.Pagination.TotalItems)
}

func TestAPIListPageBeyondRange(t *testing.T) {
	e := newTestEnv(t)
	createID(t, e, "/api/v1/raeume", `{"raumname":"A","gebaeude":"H","kapazitaet":5}`)

	for _, path := range []string{
		"/api/v1/raeume?page=9223372036854775807&size=2",
		"/api/v1/raeume?page=4611686018427387905&size=2",
		"/api/v1/raeume?page=5&size=2",
	} {
		rec := e.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		var page struct {
			Items []json.RawMessage `json:"items"`
		}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page), path)
		assert.Empty(t, page.Items, path)
	}
}

func TestAPIAnmeldungPaidFlag(t *testing.T) {
	e := newTestEnv(t)
	teilnehmerID, kursID := seedCourse(t, e)

	id := createID(t, e, "/api/v1/anmeldungen", `{"teilnehmer_id":"`+teilnehmerID+`","kurs_id":"`+kursID+`"}`)

	rec := e.do(http.MethodGet, "/api/v1/anmeldungen/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"anmeldedatum":"2024-06-01"`)
	assert.Contains(t, rec.Body.String(), `"bezahlt":false`)

	// empty body toggles
	rec = e.do(http.MethodPatch, "/api/v1/anmeldungen/"+id+"/bezahlt", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"bezahlt":true`)

	rec = e.do(http.MethodPatch, "/api/v1/anmeldungen/"+id+"/bezahlt", `{"bezahlt":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bezahlt":true`)
	assert.Contains(t, rec.Body.String(), `"anmeldedatum":"2024-06-01"`)

	rec = e.do(http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		Stats struct {
			Kurse             int     `json:"kurse"`
			KurseBevorstehend int     `json:"kurse_bevorstehend"`
			Bezahlt           int     `json:"bezahlt"`
			Offen             int     `json:"offen"`
			Umsatz            float64 `json:"umsatz"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &dash))
	assert.Equal(t, 1, dash.Stats.Kurse)
	assert.Equal(t, 1, dash.Stats.KurseBevorstehend)
	assert.Equal(t, 1, dash.Stats.Bezahlt)
	assert.Equal(t, 0, dash.Stats.Offen)
	assert.InDelta(t, 490.0, dash.Stats.Umsatz, 0.001)
}

func TestHealthAndPing(t *testing.T) {
	e := newTestEnv(t)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/v1/health", "").Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/ping", "").Code)
}

func TestWebIndexTabs(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "Keine Kurse"},
		{"/?tab=unknown", "Keine Kurse"},
		{"/?tab=dozenten", "Keine Dozenten"},
		{"/?tab=teilnehmer", "Keine Teilnehmer"},
		{"/?tab=raeume", "Keine Räume"},
		{"/?tab=anmeldungen", "Keine Anmeldungen"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := e.do(http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "Kursverwaltung")
			assert.Contains(t, body, tt.want)
		})
	}
}

func TestWebKursDialogShowsPrerequisiteNotice(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/kurse/new", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bitte fügen Sie zuerst Dozenten und Räume hinzu")
}

func TestWebCreateEditDelete(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/dozenten/new", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Neuer Dozent")

	rec = e.postForm("/dozenten", url.Values{"name": {"Ada"}, "email": {"ada@example.de"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/?tab=dozenten", rec.Header().Get("Location"))

	dozenten, err := e.svc.Dozenten.List(context.Background())
	require.NoError(t, err)
	require.Len(t, dozenten, 1)
	id := dozenten[0].RecordID

	rec = e.do(http.MethodGet, "/dozenten/"+id+"/edit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dozent bearbeiten")
	assert.Contains(t, rec.Body.String(), `value="ada@example.de"`)

	rec = e.postForm("/dozenten/"+id, url.Values{"name": {"Ada L."}, "email": {"ada@example.de"}, "fachgebiet": {"Go"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	d, err := e.svc.Dozenten.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", d.Fields.Name)
	assert.Equal(t, "Go", d.Fields.Fachgebiet)

	rec = e.do(http.MethodGet, "/dozenten/"+id+"/delete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dozent löschen")

	rec = e.postForm("/dozenten/"+id+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	dozenten, err = e.svc.Dozenten.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dozenten)
}

func TestWebInvalidInputRerendersDialog(t *testing.T) {
	e := newTestEnv(t)

	rec := e.postForm("/dozenten", url.Values{"name": {""}, "email": {"ada@example.de"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pflichtfeld")
	assert.Contains(t, rec.Body.String(), `value="ada@example.de"`)

	rec = e.postForm("/raeume", url.Values{"raumname": {"101"}, "gebaeude": {"A"}, "kapazitaet": {"viele"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bitte eine ganze Zahl angeben")
	assert.Contains(t, rec.Body.String(), `value="viele"`)

	raeume, err := e.svc.Raeume.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, raeume)
}

func TestWebFormShowsParseAndValidationErrorsTogether(t *testing.T) {
	e := newTestEnv(t)

	rec := e.postForm("/raeume", url.Values{"raumname": {""}, "gebaeude": {"A"}, "kapazitaet": {"abc"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Pflichtfeld")
	assert.Contains(t, body, "Bitte eine ganze Zahl angeben")

	rec = e.postForm("/kurse", url.Values{
		"titel":          {""},
		"startdatum":     {"2024-03-05"},
		"enddatum":       {"2024-03-01"},
		"max_teilnehmer": {"10"},
		"preis":          {"teuer"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Bitte eine Zahl angeben")
	assert.Contains(t, body, "Pflichtfeld")
	assert.Contains(t, body, "Das Enddatum darf nicht vor dem Startdatum liegen")

	raeume, err := e.svc.Raeume.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, raeume)
	kurse, err := e.svc.Kurse.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, kurse)
}

func TestWebMissingRecord(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/teilnehmer/aaaaaaaaaaaaaaaaaaaaaaaa/edit", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Der Eintrag wurde nicht gefunden")

	rec = e.postForm("/teilnehmer/aaaaaaaaaaaaaaaaaaaaaaaa/delete", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Teilnehmer löschen")
}

func TestWebKursAndTogglePaid(t *testing.T) {
	e := newTestEnv(t)
	teilnehmerID, kursID := seedCourse(t, e)

	rec := e.do(http.MethodGet, "/?tab=kurse", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Go")
	assert.Contains(t, body, "01.07.2024")
	assert.Contains(t, body, "490,00 €")

	rec = e.postForm("/anmeldungen", url.Values{
		"teilnehmer_id": {teilnehmerID},
		"kurs_id":       {kursID},
		"anmeldedatum":  {"2024-05-20"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	anmeldungen, err := e.svc.Anmeldungen.List(context.Background())
	require.NoError(t, err)
	require.Len(t, anmeldungen, 1)
	require.False(t, anmeldungen[0].Fields.Bezahlt)

	rec = e.postForm("/anmeldungen/"+anmeldungen[0].RecordID+"/toggle-bezahlt", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?tab=anmeldungen", rec.Header().Get("Location"))

	a, err := e.svc.Anmeldungen.Get(context.Background(), anmeldungen[0].RecordID)
	require.NoError(t, err)
	assert.True(t, a.Fields.Bezahlt)
	assert.Equal(t, "2024-05-20", a.Fields.Anmeldedatum)

	rec = e.do(http.MethodGet, "/?tab=anmeldungen", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lena")
	assert.Contains(t, rec.Body.String(), "20.05.2024")
}

func TestWebKursEndBeforeStart(t *testing.T) {
	e := newTestEnv(t)
	_, kursID := seedCourse(t, e)
	kurs, err := e.svc.Kurse.Get(context.Background(), kursID)
	require.NoError(t, err)

	form := url.Values{
		"titel":          {"Go"},
		"startdatum":     {"2024-07-05"},
		"enddatum":       {"2024-07-01"},
		"max_teilnehmer": {"10"},
		"preis":          {"12,50"},
		"dozent_id":      {livingapps.ExtractRecordID(kurs.Fields.Dozent)},
		"raum_id":        {livingapps.ExtractRecordID(kurs.Fields.Raum)},
	}
	rec := e.postForm("/kurse/"+kursID, form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Das Enddatum darf nicht vor dem Startdatum liegen")
}
