package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nextglide-backend/src/controllers"
	"nextglide-backend/src/models"
	"nextglide-backend/src/services/applications"
	"nextglide-backend/src/services/catalog"
	"nextglide-backend/src/services/categories"
	"nextglide-backend/src/services/contacts"
	"nextglide-backend/src/services/inquiries"
	"nextglide-backend/src/services/jobs"
	"nextglide-backend/src/services/mailer"
	"nextglide-backend/src/services/notify"
	"nextglide-backend/src/services/socialposts"
	"nextglide-backend/src/services/stats"
	"nextglide-backend/src/services/uploads"
	"nextglide-backend/src/services/webhooks"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type testServer struct {
	app       *fiber.App
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	notifier := notify.New(mailer.NewLogSender(log), nil, "info@test.com", "Test", log)
	t.Cleanup(notifier.Wait)

	dir := t.TempDir()
	images := uploads.NewLocalStore(dir, "/uploads")

	contactSvc := contacts.NewService(contacts.NewMemoryStore(), notifier, log)
	serviceSvc := catalog.NewService(models.ServiceKind, catalog.NewMemoryStore(), nil, log)
	solutionSvc := catalog.NewService(models.SolutionKind, catalog.NewMemoryStore(), nil, log)
	serviceInq := inquiries.NewService(models.ServiceKind, inquiries.NewMemoryStore(), notifier, log)
	solutionInq := inquiries.NewService(models.SolutionKind, inquiries.NewMemoryStore(), notifier, log)
	jobSvc := jobs.NewService(jobs.NewMemoryStore(), jobs.NewMemoryFormStore(), log)
	appSvc := applications.NewService(applications.NewMemoryStore(), jobSvc, notifier, log)
	postSvc := socialposts.NewService(socialposts.NewMemoryStore(), images, nil, log)
	categorySvc := categories.NewService(categories.NewMemoryStore())
	statsSvc := stats.NewService(map[string]stats.Counter{
		"categories": categorySvc,
		"contacts":   contactSvc,
		"services":   serviceSvc,
	})

	reg := prometheus.NewRegistry()
	app := NewApp(Handlers{
		System:       controllers.NewSystemController(nil, statsSvc, "test", log),
		Contacts:     controllers.NewContactController(contactSvc, log),
		Services:     controllers.NewCatalogController(serviceSvc, serviceInq, log),
		Solutions:    controllers.NewCatalogController(solutionSvc, solutionInq, log),
		Jobs:         controllers.NewJobController(jobSvc, log),
		Applications: controllers.NewApplicationController(appSvc, log),
		Categories:   controllers.NewCategoryController(categorySvc, log),
		SocialPosts:  controllers.NewSocialPostController(postSvc, log),
		Webhooks:     controllers.NewWebhookController(webhooks.NewMailEvents(log)),
	}, Options{
		AllowedOrigins: "*",
		UploadDir:      dir,
		Registerer:     reg,
		Gatherer:       reg,
		Log:            log,
	})
	return &testServer{app: app, uploadDir: dir}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestContactSubmitAndList(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/contacts",
		`{"name":"Ann","email":"ann@x.com","subject":"Hi","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Data    models.Contact `json:"data"`
	}](t, body)
	assert.True(t, created.Success)
	assert.Equal(t, "Contact submitted successfully.", created.Message)
	assert.False(t, created.Data.ID.IsZero())

	status, body = s.do(t, http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, status)
	list := decode[[]models.Contact](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "ann@x.com", list[0].Email)

	status, body = s.do(t, http.MethodPost, "/api/contacts", `{"name":"Ann","email":"nope","subject":"Hi","message":"Hello"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, http.StatusBadRequest, decode[models.ErrorResponse](t, body).Status)
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{
		"/api/contacts/xyz",
		"/api/services/inquiries/xyz",
		"/api/jobs/xyz",
		"/api/social-posts/xyz",
	} {
		status, body := s.do(t, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, "Invalid ID", decode[models.ErrorResponse](t, body).Message, path)
	}
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/services",
		`{"name":"Cloud","shortDescription":"s","category":"c","startingPrice":"p","slug":"cloud","detailedDescription":"long"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	item := decode[models.CatalogItem](t, body)

	status, body = s.do(t, http.MethodGet, "/api/services", "")
	require.Equal(t, http.StatusOK, status)
	listing := decode[[]map[string]any](t, body)
	require.Len(t, listing, 1)
	assert.NotContains(t, listing[0], "detailedDescription")
	assert.Equal(t, "cloud", listing[0]["slug"])

	// Fixed paths win over the slug parameter.
	status, body = s.do(t, http.MethodGet, "/api/services/inquiries/all", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = s.do(t, http.MethodGet, "/api/services/cloud", "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodGet, "/api/solutions/cloud", "")
	assert.Equal(t, http.StatusNotFound, status)

	inquiry := `{"fullName":"Bo","email":"bo@x.com","phone":"1","requirements":"r","serviceId":"` +
		item.ID.Hex() + `","serviceName":"Cloud","customResponses":[{"question":"Team size","answer":12}]}`
	status, body = s.do(t, http.MethodPost, "/api/services/inquiry", inquiry)
	require.Equal(t, http.StatusCreated, status, string(body))
	submitted := decode[struct {
		Message string         `json:"message"`
		Data    models.Inquiry `json:"data"`
	}](t, body)
	assert.Equal(t, "Application submitted successfully", submitted.Message)

	status, body = s.do(t, http.MethodPut, "/api/services/inquiries/"+submitted.Data.ID.Hex()+"/status", `{"status":"Closed"}`)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, models.InquiryClosed, decode[models.Inquiry](t, body).Status)

	status, body = s.do(t, http.MethodDelete, "/api/services/"+item.ID.Hex(), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Service deleted successfully", decode[models.MessageResponse](t, body).Message)
}

func TestSocialPostLifecycle(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/social-posts",
		`{"title":"Launch","caption":"We are live","hashtags":"#go #fiber","status":"Published"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[struct {
		Success bool              `json:"success"`
		Data    models.SocialPost `json:"data"`
	}](t, body)
	require.True(t, created.Success)
	id := created.Data.ID.Hex()
	assert.Equal(t, []string{"#go", "#fiber"}, created.Data.Hashtags)

	for i, want := range []bool{true, false} {
		status, body = s.do(t, http.MethodPut, "/api/social-posts/"+id+"/toggle-visibility", "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, want, decode[models.SocialPost](t, body).IsHidden, "toggle %d", i)
	}

	status, _ = s.do(t, http.MethodPost, "/api/social-posts/"+id+"/like", "")
	require.Equal(t, http.StatusOK, status)
	status, body = s.do(t, http.MethodPost, "/api/social-posts/"+id+"/comment", `{"text":"nice"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[models.SocialPost](t, body).Comments, 1)

	status, body = s.do(t, http.MethodPost, "/api/social-posts/"+id+"/comment", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Comment text required", decode[models.ErrorResponse](t, body).Message)

	status, body = s.do(t, http.MethodGet, "/api/social-posts", "")
	require.Equal(t, http.StatusOK, status)
	feed := decode[[]models.SocialPostView](t, body)
	require.Len(t, feed, 1)
	assert.Equal(t, 1, feed[0].Likes)

	status, _ = s.do(t, http.MethodGet, "/api/social-posts?date=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSocialPostMultipartUpload(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Photo"))
	require.NoError(t, w.WriteField("caption", "Look"))
	part, err := w.CreateFormFile("image", "team photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/social-posts", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	status, body := s.send(t, req)
	require.Equal(t, http.StatusCreated, status, string(body))

	post := decode[struct {
		Data models.SocialPost `json:"data"`
	}](t, body).Data
	require.True(t, strings.HasPrefix(post.ImageURL, "/uploads/social-posts/social_post_"), post.ImageURL)
	assert.True(t, strings.HasSuffix(post.ImageURL, "_team_photo.png"))

	stored, err := os.ReadFile(filepath.Join(s.uploadDir, strings.TrimPrefix(post.ImageURL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))

	status, body = s.do(t, http.MethodGet, post.ImageURL, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "png-bytes", string(body))
}

func TestJobsFormsAndApplications(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/jobs", `{"title":"Go Engineer"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	job := decode[models.Job](t, body)

	status, body = s.do(t, http.MethodGet, "/api/forms/"+job.ID.Hex(), "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(decode[map[string]json.RawMessage](t, body)["fields"]))

	status, body = s.do(t, http.MethodPost, "/api/applications",
		`{"jobId":"`+job.ID.Hex()+`","formData":{"Full Name":"Cy","Email":"cy@x.com"}}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	app := decode[models.Application](t, body)
	assert.Equal(t, "cy@x.com", app.Email)

	status, body = s.do(t, http.MethodGet, "/api/applications/"+job.ID.Hex(), "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Application](t, body), 1)

	status, body = s.do(t, http.MethodPost, "/api/applications", `{"jobId":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", decode[models.ErrorResponse](t, body).Message)
}

func TestSubmissionsAcceptAnyAnswerShape(t *testing.T) {
	s := newTestServer(t)

	testCases := []struct {
		name   string
		answer string
		want   string
	}{
		{name: "number list", answer: `[1,2]`, want: "1, 2"},
		{name: "mixed list", answer: `["a",1,true]`, want: "a, 1, true"},
		{name: "object", answer: `{"file":"cv.pdf"}`, want: `{"file":"cv.pdf"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inquiry := `{"fullName":"Bo","email":"bo@x.com","phone":"1","requirements":"r",` +
				`"serviceId":"` + primitive.NewObjectID().Hex() + `","serviceName":"Cloud",` +
				`"customResponses":[{"question":"Q","answer":` + tc.answer + `}]}`
			status, body := s.do(t, http.MethodPost, "/api/services/inquiry", inquiry)
			require.Equal(t, http.StatusCreated, status, string(body))
			data := decode[struct {
				Data models.Inquiry `json:"data"`
			}](t, body).Data
			require.Len(t, data.CustomResponses, 1)
			assert.Equal(t, tc.want, data.CustomResponses[0].Answer.Text())
		})
	}

	status, body := s.do(t, http.MethodPost, "/api/jobs", `{"title":"Designer"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	job := decode[models.Job](t, body)

	status, body = s.do(t, http.MethodPost, "/api/applications",
		`{"jobId":"`+job.ID.Hex()+`","formData":{"f1":"dee@x.com","f2":[1,2],"f3":{"file":"cv.pdf"}}}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Equal(t, "dee@x.com", decode[models.Application](t, body).Email)
}

func TestSystemRoutes(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Backend Running")

	status, body = s.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, status)
	health := decode[models.HealthResponse](t, body)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "test", health.Env)
	assert.False(t, health.MongoConnected)

	_, _ = s.do(t, http.MethodPost, "/api/contacts", `{"name":"A","email":"a@x.com","subject":"S","message":"M"}`)
	_, _ = s.do(t, http.MethodPost, "/api/categories", `{"name":"News"}`)
	status, body = s.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []models.CollectionCount{
		{Collection: "categories", Count: 1},
		{Collection: "contacts", Count: 1},
		{Collection: "services", Count: 0},
	}, decode[[]models.CollectionCount](t, body))

	status, body = s.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/api/stats",status_code="200"} 1`)

	status, body = s.do(t, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, http.StatusNotFound, decode[models.ErrorResponse](t, body).Status)
}

func TestMailWebhookAlwaysAcknowledges(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{`[{"event":"open","email":"a@x.com"}]`, `{"not":"a list"}`} {
		status, out := s.do(t, http.MethodPost, "/webhooks/mailjet", body)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "OK", string(out))
	}
}
