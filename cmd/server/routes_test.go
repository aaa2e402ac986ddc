package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waktusolat/solat-api/internal/config"
	"github.com/waktusolat/solat-api/internal/gazetteer"
	adminpackets "github.com/waktusolat/solat-api/internal/http/api/admin/packets"
	solatpackets "github.com/waktusolat/solat-api/internal/http/api/solat/packets"
	zonepackets "github.com/waktusolat/solat-api/internal/http/api/zones/packets"
	"github.com/waktusolat/solat-api/internal/http/middleware"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/notify"
	"github.com/waktusolat/solat-api/internal/schedule"
	"github.com/waktusolat/solat-api/internal/schedule/scheduletest"
	"github.com/waktusolat/solat-api/internal/storage"
)

const (
	testSecret   = "test-secret"
	testAdmin    = "admin"
	testPassword = "s3cret-pass"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.ScheduleUpdated
}

func (p *recordingPublisher) PublishScheduleUpdated(_ context.Context, evt notify.ScheduleUpdated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() {}

type testServer struct {
	router    *gin.Engine
	publisher *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := schedule.NewMemoryStore()
	store.Add(scheduletest.Month("KDH01", 2025, time.May, scheduletest.KDH01May2025)...)
	store.Add(scheduletest.Month("PNG01", 2026, time.January, scheduletest.PNG01Jan2026)...)
	store.Add(scheduletest.Month("SGR01", 2026, time.January, scheduletest.PNG01Jan2026)...)
	store.Add(scheduletest.Month("WLY01", 2026, time.January, scheduletest.PNG01Jan2026)...)

	locator, err := LoadBoundaries(context.Background(), storage.NewLocalStorage("../../internal/geo/testdata"), "districts.geojson")
	require.NoError(t, err)

	hash, err := middleware.HashPassword(testPassword)
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(time.Date(2026, time.January, 15, 4, 0, 0, 0, time.UTC))
	m := metrics.NewForTesting()
	publisher := &recordingPublisher{}

	router := NewRouter(Dependencies{
		Config: &config.Config{
			CORSOrigins:       []string{"*"},
			PDFCompress:       false,
			JWTSecret:         testSecret,
			AdminUsername:     testAdmin,
			AdminPasswordHash: hash,
		},
		Zones:     gazetteer.MustLoad(),
		Schedules: schedule.NewResolver(store, clock).WithMetrics(m),
		Locator:   locator,
		Store:     store,
		Publisher: publisher,
		Metrics:   m,
		Clock:     clock,
	})
	return &testServer{router: router, publisher: publisher}
}

func (s *testServer) do(method, path string, body any, header ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(http.MethodGet, path, nil)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestSolatV1(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/solat/KDH01?year=2025&month=5")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[solatpackets.V1Response](t, rec)
	assert.Equal(t, "OK!", resp.Status)
	assert.Equal(t, "KDH01", resp.Zone)
	assert.Equal(t, "month", resp.PeriodType)
	require.Len(t, resp.PrayerTime, 31)
	assert.Equal(t, solatpackets.V1Day{
		Hijri:   "1446-11-03",
		Date:    "01-May-2025",
		Day:     "Thursday",
		Fajr:    "05:55:00",
		Syuruk:  "07:04:00",
		Dhuhr:   "13:18:00",
		Asr:     "16:34:00",
		Maghrib: "19:27:00",
		Isha:    "20:39:00",
	}, resp.PrayerTime[0])
}

func TestSolatV1_Rollover(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/solat/PNG01?year=2025&month=13")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[solatpackets.V1Response](t, rec)
	require.Len(t, resp.PrayerTime, 31)
	first := resp.PrayerTime[0]
	assert.Equal(t, "1447-07-11", first.Hijri)
	assert.Equal(t, "01-Jan-2026", first.Date)
	assert.Equal(t, "Thursday", first.Day)
	assert.Equal(t, []string{"06:14:00", "07:26:00", "13:24:00", "16:46:00", "19:18:00", "20:33:00"},
		[]string{first.Fajr, first.Syuruk, first.Dhuhr, first.Asr, first.Maghrib, first.Isha})
}

func TestSolatV1_FailuresAreOpaque(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{
		"/solat/XXX99",
		"/solat/WLY02?year=2022&month=12",
		"/solat/SGR01?year=twenty&month=1",
	} {
		rec := s.get(path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.JSONEq(t, `{"message":"Server Error"}`, rec.Body.String(), path)
	}
}

func TestSolatV2(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/v2/solat/KDH01?year=2025&month=5")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[solatpackets.V2Response](t, rec)
	assert.Equal(t, "KDH01", resp.Zone)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, "MAY", resp.Month)
	assert.Equal(t, 5, resp.MonthNumber)
	require.Len(t, resp.Prayers, 31)
	assert.Equal(t, solatpackets.V2Day{
		Day:     1,
		Hijri:   "1446-11-03",
		Fajr:    1746050100,
		Syuruk:  1746054240,
		Dhuhr:   1746076680,
		Asr:     1746088440,
		Maghrib: 1746098820,
		Isha:    1746103140,
	}, resp.Prayers[0])
}

func TestSolatV2_RolloverKeepsRawFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/v2/solat/PNG01?year=2025&month=13")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[solatpackets.V2Response](t, rec)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, "JAN", resp.Month)
	assert.Equal(t, 13, resp.MonthNumber)
	require.Len(t, resp.Prayers, 31)
	assert.Equal(t, solatpackets.V2Day{
		Day:     1,
		Hijri:   "1447-07-11",
		Fajr:    1767219240,
		Syuruk:  1767223560,
		Dhuhr:   1767245040,
		Asr:     1767257160,
		Maghrib: 1767266280,
		Isha:    1767270780,
	}, resp.Prayers[0])
}

func TestSolatV2_CurrentMonth(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/v2/solat/SGR01")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[solatpackets.V2Response](t, rec)
	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, 1, resp.MonthNumber)
	assert.Equal(t, "JAN", resp.Month)
}

func TestSolatV2_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/v2/solat/WLY02?year=2022&month=12")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"No data found for zone: WLY02 for Dec/2022"}`, rec.Body.String())

	rec = s.get("/v2/solat/ABC01?year=2026&month=1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"No data found for zone: ABC01 for Jan/2026"}`, rec.Body.String())

	rec = s.get("/v2/solat/SGR01?year=2026&month=one")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"year and month must be integers"}`, rec.Body.String())
}

func TestSolatByGPS(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/v2/solat/gps/3.113034350544325/101.66375285717807?year=2026&month=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "WLY01", decode[solatpackets.V2Response](t, rec).Zone)

	rec = s.get("/solat/gps/3.113034350544325/101.66375285717807?year=2026&month=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "WLY01", decode[solatpackets.V1Response](t, rec).Zone)

	rec = s.get("/v2/solat/gps/1.282016154947726/103.85414065511813")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"No zone found for the given coordinates."}`, rec.Body.String())
}

func TestJadualPDF(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/jadual_solat/SGR01?year=2025&month=13")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/pdf")
	assert.Equal(t, "inline; filename=jadual_SGR01_2026_01.pdf", rec.Header().Get("Content-Disposition"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "%PDF-"))
	for _, want := range []string{
		"Jadual Waktu Solat", "Waktu Solat Malaysia", "SGR01", "Januari 2026",
		"Gombak, Petaling, Sepang, Hulu Langat, Hulu Selangor, Shah Alam",
		"Tarikh", "Subuh", "Isyak", "01-01-2026", "31-01-2026",
	} {
		assert.Contains(t, body, want)
	}
}

func TestJadualPDF_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/jadual_solat/ASD01?year=2026&month=1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"No data found for zone: ASD01 for Jan/2026"}`, rec.Body.String())

	rec = s.get("/jadual_solat/SGR01?year=2022&month=1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"No data found for zone: SGR01 for Jan/2022"}`, rec.Body.String())

	rec = s.get("/jadual_solat/SGR01?year=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestZones(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/zones")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]zonepackets.ZoneResponse](t, rec), 60)

	rec = s.get("/zones/SGR")
	require.Equal(t, http.StatusOK, rec.Code)
	sgr := decode[[]zonepackets.ZoneResponse](t, rec)
	require.Len(t, sgr, 3)
	for _, z := range sgr {
		assert.True(t, strings.HasPrefix(z.JakimCode, "SGR"))
	}
	assert.Equal(t, "Gombak, Petaling, Sepang, Hulu Langat, Hulu Selangor, Shah Alam", sgr[0].Daerah)

	rec = s.get("/zones/XYZ99")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestZonesByGPS(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/zones/3.113034350544325/101.66375285717807", http.StatusOK, `{"zone":"WLY01","state":"KUL","district":"W.P. Kuala Lumpur"}`},
		{"/zones/3.183401543161759/102.27665365633841", http.StatusOK, `{"zone":"PHG04","state":"PHG","district":"Bentong"}`},
		{"/zones/1.282016154947726/103.85414065511813", http.StatusInternalServerError, `{"error":"No zone found for the given coordinates."}`},
		{"/zones/100/200", http.StatusInternalServerError, `{"error":"Longitude 200.000000 is out of range in function st_geomfromtext. It must be within (-180.000000, 180.000000]."}`},
		{"/zones/100/101", http.StatusInternalServerError, `{"error":"Latitude 100.000000 is out of range in function st_geomfromtext. It must be within [-90.000000, 90.000000]."}`},
		{"/zones/north/101", http.StatusBadRequest, `{"error":"latitude and longitude must be numbers"}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := s.get(tt.path)
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestIdempotentResponses(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{
		"/solat/KDH01?year=2025&month=5",
		"/v2/solat/PNG01?year=2025&month=13",
		"/v2/solat/WLY02?year=2022&month=12",
		"/jadual_solat/SGR01?year=2026&month=1",
		"/zones",
		"/zones/3.113034350544325/101.66375285717807",
	} {
		first := s.get(path)
		second := s.get(path)
		assert.Equal(t, first.Code, second.Code, path)
		assert.Equal(t, first.Body.Bytes(), second.Body.Bytes(), path)
	}
}

func TestOps(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.get("/healthz").Code)
	assert.JSONEq(t, `{"status":"ready"}`, s.get("/readyz").Body.String())

	s.get("/zones")
	rec := s.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `solat_api_http_requests_total{method="GET",route="/zones",status="200"} 1`)
}

func login(t *testing.T, s *testServer) string {
	t.Helper()
	rec := s.do(http.MethodPost, "/admin/auth/login", adminpackets.LoginRequest{Username: testAdmin, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[adminpackets.LoginResponse](t, rec).Token
}

func monthBody(year int, month time.Month) adminpackets.PutMonthRequest {
	var req adminpackets.PutMonthRequest
	for _, rec := range scheduletest.Month("SGR01", year, month, scheduletest.KDH01May2025) {
		req.Prayers = append(req.Prayers, adminpackets.PrayerDay{
			Day:     rec.Date.Day(),
			Hijri:   rec.Hijri,
			Fajr:    rec.Fajr.Unix(),
			Syuruk:  rec.Syuruk.Unix(),
			Dhuhr:   rec.Dhuhr.Unix(),
			Asr:     rec.Asr.Unix(),
			Maghrib: rec.Maghrib.Unix(),
			Isha:    rec.Isha.Unix(),
		})
	}
	return req
}

func TestAdminLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/admin/auth/login", adminpackets.LoginRequest{Username: testAdmin, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/admin/auth/login", adminpackets.LoginRequest{Username: "root", Password: testPassword})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/admin/auth/login", map[string]string{"username": testAdmin})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.NotEmpty(t, login(t, s))
}

func TestAdminPutMonth(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)
	auth := []string{"Authorization", "Bearer " + token}

	rec := s.do(http.MethodPut, "/admin/solat/SGR01/2027/2", monthBody(2027, time.February))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPut, "/admin/solat/SGR01/2027/2", monthBody(2027, time.February), auth...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"updated","count":28}`, rec.Body.String())

	got := s.get("/v2/solat/SGR01?year=2027&month=2")
	require.Equal(t, http.StatusOK, got.Code)
	assert.Len(t, decode[solatpackets.V2Response](t, got).Prayers, 28)

	require.Len(t, s.publisher.events, 1)
	evt := s.publisher.events[0]
	assert.Equal(t, "SGR01", evt.Zone)
	assert.Equal(t, 2027, evt.Year)
	assert.Equal(t, 2, evt.Month)
	assert.Equal(t, 28, evt.Records)
	assert.Equal(t, testAdmin, evt.UpdatedBy)
}

func TestAdminPutMonth_Rejects(t *testing.T) {
	s := newTestServer(t)
	auth := []string{"Authorization", "Bearer " + login(t, s)}

	short := monthBody(2027, time.March)
	short.Prayers = short.Prayers[:30]

	tests := []struct {
		path string
		body any
		code int
	}{
		{"/admin/solat/ZZZ01/2027/3", monthBody(2027, time.March), http.StatusNotFound},
		{"/admin/solat/SGR01/2027/13", monthBody(2027, time.March), http.StatusBadRequest},
		{"/admin/solat/SGR01/2027/3", short, http.StatusBadRequest},
		{"/admin/solat/SGR01/2027/2", monthBody(2027, time.March), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d", tt.path, tt.code), func(t *testing.T) {
			rec := s.do(http.MethodPut, tt.path, tt.body, auth...)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
	assert.Empty(t, s.publisher.events)
}
