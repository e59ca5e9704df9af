package https_server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"ecotech_server/internal/config"
	"ecotech_server/internal/dao/repository"
	"ecotech_server/internal/dto/respond"
	"ecotech_server/internal/handler"
	"ecotech_server/internal/model"
	"ecotech_server/internal/service"
	"ecotech_server/internal/session"
	"ecotech_server/internal/storage"
	"ecotech_server/internal/testutil"
	"ecotech_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type testApp struct {
	server    *httptest.Server
	client    *http.Client
	db        *gorm.DB
	uploadDir string
}

func newTestApp(t *testing.T, mutate func(cfg *config.Config)) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Mode = "test"
	cfg.UploadDir = filepath.Join(t.TempDir(), "uploads")
	if mutate != nil {
		mutate(cfg)
	}

	db := testutil.NewDB(t)
	resumes, err := storage.New(context.Background(), &cfg.StorageConfig)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	svc := service.NewServices(repository.NewRepositories(db), resumes)
	if _, err := svc.Auth.EnsureDefaultAdmin(context.Background(), cfg.AdminConfig); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	sessions := session.NewManager(session.NewMemoryStore(), jwt.NewSigner(cfg.SessionConfig.Secret), cfg.RememberDays, false)
	handlers := handler.NewHandlers(cfg.AppName, svc, sessions)
	if err := handler.InitTrans("en"); err != nil {
		t.Fatalf("init translator: %v", err)
	}
	engine, err := NewEngine(cfg, handlers, sessions, svc.Auth)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	srv := httptest.NewServer(Handler(cfg, engine))
	t.Cleanup(srv.Close)

	jar, _ := cookiejar.New(nil)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testApp{server: srv, client: client, db: db, uploadDir: cfg.UploadDir}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (a *testApp) postForm(t *testing.T, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, values)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (a *testApp) apply(t *testing.T, fields map[string]string, filename string, data []byte) (*http.Response, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if filename != "" {
		part, err := mw.CreateFormFile("resume", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write(data)
	}
	_ = mw.Close()
	resp, err := a.client.Post(a.server.URL+"/apply", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /apply: %v", err)
	}
	return resp, readBody(t, resp)
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	resp, _ := a.postForm(t, "/auth/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/dashboard" {
		t.Fatalf("login: %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func ashaFields() map[string]string {
	return map[string]string{
		"name":            "Asha Rao",
		"email":           "asha@example.com",
		"phone":           "+91 98765 43210",
		"college":         "IIT Madras",
		"course":          "B.Tech CSE",
		"year_of_study":   "3rd Year",
		"internship_type": model.DomainAI,
		"cover_letter":    "I have built **two** vision models.",
		"skills":          "Python, PyTorch",
	}
}

func TestInternshipReviewFlow(t *testing.T) {
	app := newTestApp(t, nil)

	resp, _ := app.apply(t, ashaFields(), "Asha Resume.pdf", testutil.MinimalPDF(2))
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/apply" {
		t.Fatalf("apply: %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	_, page := app.get(t, "/apply")
	if !strings.Contains(page, "Your application has been submitted successfully!") {
		t.Fatalf("success flash missing")
	}

	var stored model.InternshipApplication
	if err := app.db.First(&stored).Error; err != nil {
		t.Fatalf("load application: %v", err)
	}
	if stored.Status != model.StatusPending || stored.ReviewedAt.Valid {
		t.Fatalf("new application should be pending and unreviewed: %+v", stored)
	}
	if !regexp.MustCompile(`^\d{8}_\d{6}_Asha_Resume\.pdf$`).MatchString(stored.ResumeFilename) {
		t.Fatalf("stored name = %q", stored.ResumeFilename)
	}
	if _, err := os.Stat(filepath.Join(app.uploadDir, stored.ResumeFilename)); err != nil {
		t.Fatalf("resume not on disk: %v", err)
	}

	// anonymous access is bounced to the login page
	resp, _ = app.get(t, "/admin/dashboard")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/auth/login?next=%2Fadmin%2Fdashboard" {
		t.Fatalf("guard: %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	_, page = app.get(t, "/auth/login?next=%2Fadmin%2Fdashboard")
	if !strings.Contains(page, "Please log in to access the admin dashboard.") {
		t.Fatalf("login-required flash missing")
	}

	app.login(t)
	resp, page = app.get(t, "/admin/dashboard")
	if resp.StatusCode != http.StatusOK || !strings.Contains(page, "Asha Rao") || !strings.Contains(page, "Welcome back, admin!") {
		t.Fatalf("dashboard: %d", resp.StatusCode)
	}

	resp, body := app.get(t, "/admin/api/applications-chart")
	var chart respond.ChartRespond
	if err := json.Unmarshal([]byte(body), &chart); err != nil {
		t.Fatalf("chart json: %v (%s)", err, body)
	}
	if resp.StatusCode != http.StatusOK || len(chart.Status) != 1 || chart.Status[0].Status != "pending" || chart.Status[0].Count != 1 {
		t.Fatalf("chart = %+v", chart)
	}

	_, page = app.get(t, "/admin/applications?status=pending&search=Asha")
	if !strings.Contains(page, "asha@example.com") {
		t.Fatalf("filtered list misses the application")
	}
	_, page = app.get(t, "/admin/applications?search=asha+rao")
	if strings.Contains(page, "asha@example.com") {
		t.Fatalf("search should be case-sensitive")
	}

	idPath := "/admin/application/" + itoa(stored.ID)
	_, page = app.get(t, idPath)
	if !strings.Contains(page, "<strong>two</strong>") {
		t.Fatalf("cover letter not rendered as markdown")
	}

	resp, _ = app.postForm(t, idPath+"/update", url.Values{"status": {"accepted"}, "notes": {"Strong ML background"}})
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != idPath {
		t.Fatalf("update: %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	_, page = app.get(t, idPath)
	if !strings.Contains(page, "Application status updated to accepted") {
		t.Fatalf("update flash missing")
	}
	if err := app.db.First(&stored, stored.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != model.StatusAccepted || stored.Notes != "Strong ML background" || !stored.ReviewedAt.Valid {
		t.Fatalf("review not saved: %+v", stored)
	}

	resp, body = app.get(t, "/admin/download-resume/"+itoa(stored.ID))
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(body, "%PDF-") {
		t.Fatalf("download: %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment") {
		t.Fatalf("not an attachment: %q", resp.Header.Get("Content-Disposition"))
	}

	resp, _ = app.get(t, "/auth/logout")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("logout: %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	resp, _ = app.get(t, "/admin/dashboard")
	if resp.StatusCode != http.StatusFound || !strings.HasPrefix(resp.Header.Get("Location"), "/auth/login") {
		t.Fatalf("session survived logout: %d", resp.StatusCode)
	}
}

func TestApplyRejectsNonPDF(t *testing.T) {
	app := newTestApp(t, nil)
	cases := map[string][]byte{
		"resume.docx": testutil.MinimalPDF(1),
		"resume.pdf":  []byte("plain text pretending to be a pdf"),
		"scanned.pdf": []byte("%PDF-1.4\nbroken"),
		"noextension": testutil.MinimalPDF(1),
	}
	for name, data := range cases {
		resp, _ := app.apply(t, ashaFields(), name, data)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d", name, resp.StatusCode)
		}
	}

	var count int64
	app.db.Model(&model.InternshipApplication{}).Count(&count)
	if count != 0 {
		t.Fatalf("rows written for rejected uploads: %d", count)
	}
	entries, _ := os.ReadDir(app.uploadDir)
	if len(entries) != 0 {
		t.Fatalf("files left in upload dir: %d", len(entries))
	}
}

func TestInvalidStatusLeavesRowUnchanged(t *testing.T) {
	app := newTestApp(t, nil)
	if resp, _ := app.apply(t, ashaFields(), "cv.pdf", testutil.MinimalPDF(1)); resp.StatusCode != http.StatusFound {
		t.Fatalf("apply: %d", resp.StatusCode)
	}
	app.login(t)

	resp, _ := app.postForm(t, "/admin/application/1/update", url.Values{"status": {"archived"}, "notes": {"x"}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("update: %d", resp.StatusCode)
	}
	_, page := app.get(t, "/admin/application/1")
	if !strings.Contains(page, "Error updating application status") {
		t.Fatalf("error flash missing")
	}

	var stored model.InternshipApplication
	app.db.First(&stored, 1)
	if stored.Status != model.StatusPending || stored.Notes != "" || stored.ReviewedAt.Valid {
		t.Fatalf("row changed: %+v", stored)
	}

	resp, _ = app.postForm(t, "/admin/application/999/update", url.Values{"status": {"accepted"}})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: %d", resp.StatusCode)
	}
}

func TestMissingResumeFile(t *testing.T) {
	app := newTestApp(t, nil)
	app.apply(t, ashaFields(), "cv.pdf", testutil.MinimalPDF(1))
	var stored model.InternshipApplication
	app.db.First(&stored)
	if err := os.Remove(filepath.Join(app.uploadDir, stored.ResumeFilename)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	app.login(t)

	resp, _ := app.get(t, "/admin/download-resume/"+itoa(stored.ID))
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	_, page := app.get(t, resp.Header.Get("Location"))
	if !strings.Contains(page, "Resume file not found") {
		t.Fatalf("missing-file flash not shown")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t, nil)
	for _, creds := range [][2]string{{"admin", "wrong"}, {"nobody", "admin123"}} {
		resp, page := app.postForm(t, "/auth/login", url.Values{"username": {creds[0]}, "password": {creds[1]}})
		if resp.StatusCode != http.StatusOK || !strings.Contains(page, "Invalid username or password. Please try again.") {
			t.Fatalf("%v: %d", creds, resp.StatusCode)
		}
	}
	resp, _ := app.get(t, "/admin/dashboard")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("bad login opened a session")
	}
}

func TestLoginPageRedirectsWhenLoggedIn(t *testing.T) {
	app := newTestApp(t, nil)
	app.login(t)
	resp, _ := app.get(t, "/auth/login")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/dashboard" {
		t.Fatalf("got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestContactSubmission(t *testing.T) {
	app := newTestApp(t, nil)
	resp, _ := app.postForm(t, "/contact", url.Values{
		"first_name": {"Ravi"},
		"last_name":  {"K"},
		"email":      {"ravi@example.com"},
		"service":    {"iot"},
		"message":    {"Need a sensor network"},
	})
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/contact" {
		t.Fatalf("got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	var msg model.ContactMessage
	if err := app.db.First(&msg).Error; err != nil {
		t.Fatalf("load contact: %v", err)
	}
	if msg.FirstName != "Ravi" || msg.Service != "iot" {
		t.Fatalf("stored = %+v", msg)
	}
	_, page := app.get(t, "/contact")
	if !strings.Contains(page, "Your message has been sent successfully!") {
		t.Fatalf("flash missing")
	}
}

func TestStaticAssetsAndNotFound(t *testing.T) {
	app := newTestApp(t, nil)
	for _, path := range []string{"/static/css/style.css", "/static/js/main.js", "/favicon.ico"} {
		if resp, _ := app.get(t, path); resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d", path, resp.StatusCode)
		}
	}
	resp, page := app.get(t, "/does-not-exist")
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(page, "404") {
		t.Fatalf("404 page: %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Frame-Options") != "DENY" {
		t.Fatalf("security headers missing")
	}
}

func TestBodyOverLimit(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.MaxContentLength = 1024 })
	resp, _ := app.apply(t, ashaFields(), "big.pdf", bytes.Repeat([]byte("x"), 4096))
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

var csrfField = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

func TestCSRFProtectsForms(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.SessionConfig.CSRF = true })

	resp, _ := app.postForm(t, "/contact", url.Values{"message": {"no token"}})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("post without token: %d", resp.StatusCode)
	}

	_, page := app.get(t, "/contact")
	m := csrfField.FindStringSubmatch(page)
	if m == nil {
		t.Fatalf("csrf field not rendered")
	}
	resp, _ = app.postForm(t, "/contact", url.Values{"message": {"with token"}, "gorilla.csrf.Token": {m[1]}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("post with token: %d", resp.StatusCode)
	}
}

// applyChunked posts the application form without a Content-Length, the way a
// streaming client would, with the CSRF token as the first field.
func (a *testApp) applyChunked(t *testing.T, token string, fields map[string]string, data []byte) (*http.Response, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if token != "" {
		_ = mw.WriteField("gorilla.csrf.Token", token)
	}
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	part, err := mw.CreateFormFile("resume", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write(data)
	_ = mw.Close()

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/apply", struct{ io.Reader }{&body})
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := a.client.Do(req)
	if err != nil {
		t.Fatalf("POST /apply: %v", err)
	}
	return resp, readBody(t, resp)
}

func TestChunkedUploadOverLimit(t *testing.T) {
	for _, withCSRF := range []bool{false, true} {
		name := "csrf off"
		if withCSRF {
			name = "csrf on"
		}
		t.Run(name, func(t *testing.T) {
			app := newTestApp(t, func(cfg *config.Config) {
				cfg.MaxContentLength = 512
				cfg.SessionConfig.CSRF = withCSRF
			})
			token := ""
			if withCSRF {
				_, page := app.get(t, "/apply")
				m := csrfField.FindStringSubmatch(page)
				if m == nil {
					t.Fatalf("csrf field not rendered")
				}
				token = m[1]
			}

			pdf := append(testutil.MinimalPDF(1), bytes.Repeat([]byte("\n%"), 1024)...)
			resp, _ := app.applyChunked(t, token, ashaFields(), pdf)
			if resp.StatusCode != http.StatusRequestEntityTooLarge {
				t.Fatalf("status = %d, want 413", resp.StatusCode)
			}
			var n int64
			app.db.Model(&model.InternshipApplication{}).Count(&n)
			if n != 0 {
				t.Fatalf("%d applications stored for an over-limit upload", n)
			}
			if entries, _ := os.ReadDir(app.uploadDir); len(entries) != 0 {
				t.Fatalf("resume written for an over-limit upload: %v", entries)
			}
		})
	}
}

func TestChunkedUploadWithCSRF(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.SessionConfig.CSRF = true })
	_, page := app.get(t, "/apply")
	m := csrfField.FindStringSubmatch(page)
	if m == nil {
		t.Fatalf("csrf field not rendered")
	}
	resp, _ := app.applyChunked(t, m[1], ashaFields(), testutil.MinimalPDF(1))
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/apply" {
		t.Fatalf("apply: %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	var n int64
	app.db.Model(&model.InternshipApplication{}).Count(&n)
	if n != 1 {
		t.Fatalf("applications = %d, want 1", n)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
