package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/images"
	"resume-builder/internal/images/imagekit"
	"resume-builder/internal/llm"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return config.Config{
		Env:                "test",
		ObjectStoreType:    "local",
		LocalStoreDir:      t.TempDir(),
		PublicBaseURL:      "http://localhost:8080",
		ImageProvider:      "store",
		LLMProvider:        "none",
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		BcryptCost:         4,
		AIRatePerSec:       1,
		AIBurst:            2,
	}
}

func TestBuildUsesMemoryReposWithoutDatabase(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("expected no database")
	}
	if _, ok := app.Images.(*images.StoreProcessor); !ok {
		t.Fatalf("expected store processor, got %T", app.Images)
	}
	if _, ok := app.LLM.(llm.PlaceholderClient); !ok {
		t.Fatalf("expected placeholder llm, got %T", app.LLM)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"memory"`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "resume_update_total") {
		t.Fatalf("unexpected metrics response %d", rec.Code)
	}
}

func TestBuildRequiresDatabaseInProduction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected error without DATABASE_URL in production")
	}
}

func TestBuildImageKitProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.ImageProvider = "imagekit"
	cfg.ImageKitPrivateKey = "private_key"
	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := app.Images.(*imagekit.Client); !ok {
		t.Fatalf("expected imagekit client, got %T", app.Images)
	}

	cfg.ImageKitPrivateKey = ""
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected error without imagekit key")
	}
}

func TestBuildLLMFallsBackOutsideProduction(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLMProvider = "openai"
	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := app.LLM.(llm.PlaceholderClient); !ok {
		t.Fatalf("expected placeholder without api key, got %T", app.LLM)
	}

	cfg.OpenAIAPIKey = "key"
	cfg.LLMModel = "gpt-4o-mini"
	app, err = Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := app.LLM.(llm.PlaceholderClient); ok {
		t.Fatal("expected openai client when configured")
	}
}

func TestAIRoutesAreRateLimited(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	token, err := app.Signer.Sign(identity("user-1"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/enhance-pro-sum", strings.NewReader(`{"userContent":"draft"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	want := []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("request %d: got %d, want %d (all %v)", i, codes[i], want[i], codes)
		}
	}
}

func identity(userID string) auth.Identity {
	return auth.Identity{UserID: userID, Email: userID + "@example.com"}
}
