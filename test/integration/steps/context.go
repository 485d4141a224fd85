//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trackd-analytics/byod/config"
	"github.com/trackd-analytics/byod/internal/infra/dependency"
	"github.com/trackd-analytics/byod/internal/integration/persistence/model"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Project fixture on disk
	projectDir string

	// Workbook
	db *gorm.DB
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return ctx, fmt.Errorf("open in-memory workbook: %w", err)
		}
		if err := db.AutoMigrate(&model.TidyLineModel{}, &model.MonthlySummaryModel{}); err != nil {
			return ctx, fmt.Errorf("migrate workbook: %w", err)
		}

		projectDir, err := os.MkdirTemp("", "byod-project-*")
		if err != nil {
			return ctx, fmt.Errorf("create project dir: %w", err)
		}

		tc := &TestContext{
			projectDir: projectDir,
			db:         db,
		}

		injector := dependency.NewInjector(config.Load(), db, func() bool { return true })
		tc.engine = injector.Router.Setup("test")
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			if tc.server != nil {
				tc.server.Close()
			}
			if tc.projectDir != "" {
				_ = os.RemoveAll(tc.projectDir)
			}
		}
		return ctx, nil
	})

	registerProjectSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// registerProjectSteps registers project fixture steps.
func registerProjectSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the project file "([^"]*)" contains:$`, theProjectFileContains)
	ctx.Step(`^the project file "([^"]*)" should exist$`, theProjectFileShouldExist)
	ctx.Step(`^I validate the project$`, iValidateTheProject)
	ctx.Step(`^I normalize the project$`, iNormalizeTheProject)
	ctx.Step(`^I analyze the project directory$`, iAnalyzeTheProjectDirectory)
	ctx.Step(`^I analyze the normalized output$`, iAnalyzeTheNormalizedOutput)
	ctx.Step(`^I analyze the normalized output with persistence$`, iAnalyzeTheNormalizedOutputWithPersistence)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
}

// Step implementations

func theProjectFileContains(ctx context.Context, name string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	path := filepath.Join(tc.projectDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create fixture directory: %w", err)
	}
	content := strings.TrimLeft(body.Content, "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func theProjectFileShouldExist(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if _, err := os.Stat(filepath.Join(tc.projectDir, name)); err != nil {
		return fmt.Errorf("expected project file %s: %w", name, err)
	}
	return nil
}

func iValidateTheProject(ctx context.Context) (context.Context, error) {
	return postJSON(ctx, "/api/v1/projects/validate", map[string]any{
		"directory": projectDirOf(ctx),
	})
}

func iNormalizeTheProject(ctx context.Context) (context.Context, error) {
	return postJSON(ctx, "/api/v1/projects/normalize", map[string]any{
		"directory": projectDirOf(ctx),
	})
}

func iAnalyzeTheProjectDirectory(ctx context.Context) (context.Context, error) {
	return postJSON(ctx, "/api/v1/projects/analyze", map[string]any{
		"directory": projectDirOf(ctx),
	})
}

func iAnalyzeTheNormalizedOutput(ctx context.Context) (context.Context, error) {
	return postJSON(ctx, "/api/v1/projects/analyze", map[string]any{
		"directory": filepath.Join(projectDirOf(ctx), "normalized"),
	})
}

func iAnalyzeTheNormalizedOutputWithPersistence(ctx context.Context) (context.Context, error) {
	return postJSON(ctx, "/api/v1/projects/analyze", map[string]any{
		"directory": filepath.Join(projectDirOf(ctx), "normalized"),
		"persist":   true,
	})
}

func projectDirOf(ctx context.Context) string {
	if tc := GetTestContext(ctx); tc != nil {
		return tc.projectDir
	}
	return ""
}

func postJSON(ctx context.Context, endpoint string, payload map[string]any) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ctx, fmt.Errorf("marshal request body: %w", err)
	}

	resp, err := http.Post(tc.server.URL+endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, nil)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	content := strings.ReplaceAll(body.Content, "$PROJECT_DIR", tc.projectDir)
	req, err := http.NewRequest(method, tc.server.URL+endpoint, bytes.NewBufferString(content))
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}

	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	if _, ok := data[field]; !ok {
		return fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
	}

	return nil
}
