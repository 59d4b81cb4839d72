package tests

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	dbadapter "housetasks/internal/adapter/db"
	httpadapter "housetasks/internal/adapter/http"
	"housetasks/internal/adapter/http/handlers"
	"housetasks/internal/adapter/http/middleware"
	appservice "housetasks/internal/app/service"
	"housetasks/internal/core/domain"
	"housetasks/internal/testutil"
	"housetasks/pkg/translator"
)

// IntegrationSuiteBase runs the full HTTP stack against a fresh SQLite
// database for every test.
type IntegrationSuiteBase struct {
	suite.Suite

	DB         *sqlx.DB
	Store      *dbadapter.Store
	Reconciler *appservice.Reconciler
	Events     *capturedEvents
	Router     *gin.Engine
	House      domain.House
}

type capturedEvents struct {
	mu     sync.Mutex
	events []domain.TransitionEvent
}

func (p *capturedEvents) Publish(_ context.Context, event domain.TransitionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturedEvents) All() []domain.TransitionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.TransitionEvent(nil), p.events...)
}

func (s *IntegrationSuiteBase) SetupSuite() {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
}

func (s *IntegrationSuiteBase) SetupTest() {
	s.DB = testutil.OpenSQLite(s.T())
	s.Store = dbadapter.NewStore(s.DB)
	s.Events = &capturedEvents{}
	s.Reconciler = appservice.NewReconciler(s.Store, s.Events, appservice.WithClock(func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}))
	taskService := appservice.NewTaskService(s.Store, s.Reconciler)

	// No JWT secret: the acting profile comes from the X-Profile-ID header.
	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.NewHandlers(handlers.NewHealthHandler(s.DB), taskService), "")
	s.Router = router
	s.House = testutil.SeedHouse(s.T(), s.Store, "Gryffindor", 0, 0)
}

func (s *IntegrationSuiteBase) Do(method, path, body string, profileID string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if profileID != "" {
		req.Header.Set(middleware.ProfileIDHeader, profileID)
	}
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func (s *IntegrationSuiteBase) Decode(rec *httptest.ResponseRecorder, code int, out any) {
	s.Require().Equal(code, rec.Code, rec.Body.String())
	if out != nil {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out))
	}
}
