package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	attachmentapp "github.com/proforma/backend/internal/application/attachment"
	propertyapp "github.com/proforma/backend/internal/application/property"
	statementapp "github.com/proforma/backend/internal/application/statement"
	unitsapp "github.com/proforma/backend/internal/application/units"
	"github.com/proforma/backend/internal/infrastructure/billing"
	"github.com/proforma/backend/internal/infrastructure/config"
	"github.com/proforma/backend/internal/infrastructure/persistence"
	"github.com/proforma/backend/internal/infrastructure/printing"
	"github.com/proforma/backend/internal/infrastructure/storage"
	"github.com/proforma/backend/internal/interfaces/http/middleware"
	"github.com/proforma/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv wires the full stack over an in-memory database, with a fixed
// tenant injected in place of the auth middleware.
type testEnv struct {
	engine   *gin.Engine
	tenantID uuid.UUID
	storage  *storage.StubObjectStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	logger := zap.NewNop()
	propertyRepo := persistence.NewGormPropertyRepository(db)
	statementRepo := persistence.NewGormStatementRepository(db)
	unitRepo := persistence.NewGormUnitRepository(db)
	attachmentRepo := persistence.NewGormAttachmentRepository(db)

	stub := storage.NewStubObjectStorage()
	attachmentService := attachmentapp.NewAttachmentService(attachmentRepo, stub, logger)
	planGate := billing.NewStaticPlanGate(config.BillingConfig{
		FreePlanPropertyLimit: 3,
		ProPlanPropertyLimit:  100,
	}, logger)
	propertyService := propertyapp.NewPropertyService(propertyRepo, statementRepo, unitRepo, attachmentService, planGate, logger)
	unitService := unitsapp.NewUnitService(unitRepo, logger)
	statementService := statementapp.NewStatementService(statementRepo, unitService, logger)
	exportService := statementapp.NewExportService(statementRepo, propertyRepo, printing.DisabledRenderer{}, logger)

	tenantID := uuid.New()
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.AuthTenantIDKey, tenantID.String())
		c.Set(middleware.AuthUserIDKey, uuid.NewString())
		c.Next()
	})

	r := router.NewRouter(engine)
	r.Register(NewPropertyHandler(propertyService))
	r.Register(NewStatementHandler(statementService, exportService))
	r.Register(NewUnitHandler(unitService))
	r.Register(NewAttachmentHandler(attachmentService))
	r.Setup()

	return &testEnv{engine: engine, tenantID: tenantID, storage: stub}
}

// do sends a JSON request and decodes the envelope
func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var envelope map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &envelope)
	}
	return w, envelope
}

// createProperty provisions a property and returns its ID
func (e *testEnv) createProperty(t *testing.T, name string) uuid.UUID {
	t.Helper()

	w, envelope := e.do(t, http.MethodPost, "/api/v1/properties", map[string]any{
		"name":       name,
		"type":       "multifamily",
		"unit_count": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := envelope["data"].(map[string]any)
	id, err := uuid.Parse(data["id"].(string))
	require.NoError(t, err)
	return id
}
