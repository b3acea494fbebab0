package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"skill-registry/internal/middleware"
	"skill-registry/internal/model"
	"skill-registry/internal/skill"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockUseCase struct {
	listInput    skill.ListSkillsInput
	installInput skill.InstallInput
	syncOwner    string
	syncRepo     string
	publishInput skill.PublishInput

	list    skill.ListSkillsOutput
	detail  skill.DetailSkillOutput
	install skill.InstallOutput
	preview skill.PreviewScanOutput
	sync    model.SyncResult
	publish skill.PublishOutput
	stats   model.RegistryStats
	err     error
}

func (m *mockUseCase) SyncRepository(ctx context.Context, owner, repo string) (model.SyncResult, error) {
	m.syncOwner, m.syncRepo = owner, repo
	return m.sync, m.err
}

func (m *mockUseCase) Ingest(ctx context.Context, input skill.IngestInput) (skill.IngestOutput, error) {
	return skill.IngestOutput{}, m.err
}

func (m *mockUseCase) PreviewScan(ctx context.Context, input skill.PreviewScanInput) (skill.PreviewScanOutput, error) {
	return m.preview, m.err
}

func (m *mockUseCase) List(ctx context.Context, input skill.ListSkillsInput) (skill.ListSkillsOutput, error) {
	m.listInput = input
	return m.list, m.err
}

func (m *mockUseCase) Detail(ctx context.Context, slug string) (skill.DetailSkillOutput, error) {
	return m.detail, m.err
}

func (m *mockUseCase) Install(ctx context.Context, input skill.InstallInput) (skill.InstallOutput, error) {
	m.installInput = input
	return m.install, m.err
}

func (m *mockUseCase) Publish(ctx context.Context, input skill.PublishInput) (skill.PublishOutput, error) {
	m.publishInput = input
	return m.publish, m.err
}

func (m *mockUseCase) Stats(ctx context.Context) (model.RegistryStats, error) {
	return m.stats, m.err
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(uc skill.UseCase, apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(&mockLogger{}, apiKey, nil)
	RegisterRoutes(r.Group("/api/v1"), New(&mockLogger{}, uc), mw)
	return r
}

func do(t *testing.T, r *gin.Engine, method, target, body string, header map[string]string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return w.Code, env
}

func sampleSkill() model.Skill {
	return model.Skill{
		ID:   "1",
		Slug: "acme-pdf",
		Metadata: model.ParsedSkillMetadata{
			Name:   "pdf-reader",
			Agents: []model.AgentType{model.AgentClaudeCode},
		},
		Tier:        model.TierCommunity,
		SkillMD:     "# PDF",
		SkillMDHash: "abc",
		Scan:        model.SecurityScanResult{Passed: true},
	}
}

func TestList(t *testing.T) {
	uc := &mockUseCase{list: skill.ListSkillsOutput{Skills: []model.Skill{sampleSkill()}, Total: 1, Limit: 20}}
	r := setupRouter(uc, "")

	status, env := do(t, r, http.MethodGet, "/api/v1/skills?q=pdf&tier=community&installable=true&limit=5", "", nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}
	if uc.listInput.Query != "pdf" || uc.listInput.Tier == nil || *uc.listInput.Tier != model.TierCommunity || !uc.listInput.Installable || uc.listInput.Limit != 5 {
		t.Errorf("unexpected input %+v", uc.listInput)
	}

	var data listResp
	json.Unmarshal(env.Data, &data)
	if len(data.Skills) != 1 || data.Skills[0].Tier != model.TierCommunity || !data.Skills[0].Installable || data.Skills[0].Agents[0].SkillDir != "~/.claude/skills" {
		t.Errorf("unexpected data %s", env.Data)
	}

	status, env = do(t, r, http.MethodGet, "/api/v1/skills?tier=gold", "", nil)
	if status != http.StatusBadRequest || env.Error.Code != CodeInvalidInput {
		t.Errorf("expected 400 INVALID_INPUT for unknown tier, got %d %+v", status, env.Error)
	}
}

func TestDetail_NotFound(t *testing.T) {
	r := setupRouter(&mockUseCase{err: skill.ErrSkillNotFound}, "")

	status, env := do(t, r, http.MethodGet, "/api/v1/skills/acme-none", "", nil)
	if status != http.StatusNotFound || env.Error.Code != CodeSkillNotFound {
		t.Errorf("expected 404 SKILL_NOT_FOUND, got %d %+v", status, env.Error)
	}
}

func TestInstall(t *testing.T) {
	s := sampleSkill()
	uc := &mockUseCase{install: skill.InstallOutput{Skill: s, SkillMD: s.SkillMD, Hash: s.SkillMDHash}}
	r := setupRouter(uc, "")

	status, env := do(t, r, http.MethodGet, "/api/v1/skills/acme-pdf/install?allow_unverified=true", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if uc.installInput.Slug != "acme-pdf" || !uc.installInput.AllowUnverified {
		t.Errorf("unexpected input %+v", uc.installInput)
	}
	var data installResp
	json.Unmarshal(env.Data, &data)
	if data.SkillMD != "# PDF" || data.Hash != "abc" {
		t.Errorf("unexpected data %s", env.Data)
	}
}

func TestInstall_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{skill.ErrTierBelowMinimum, http.StatusForbidden, CodeTierBelowMinimum},
		{skill.ErrIntegrityMismatch, http.StatusConflict, CodeIntegrityMismatch},
		{errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			r := setupRouter(&mockUseCase{err: tt.err}, "")
			status, env := do(t, r, http.MethodGet, "/api/v1/skills/acme-pdf/install", "", nil)
			if status != tt.wantStatus || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("expected %d %s, got %d %+v", tt.wantStatus, tt.wantCode, status, env.Error)
			}
		})
	}
}

func TestPreviewScan(t *testing.T) {
	uc := &mockUseCase{preview: skill.PreviewScanOutput{
		ParseError: "SKILL.md must have a 'name' field in frontmatter or a heading",
		Scan: model.SecurityScanResult{
			Passed:          false,
			Warnings:        []model.SecurityWarning{{Severity: model.SeverityHigh, Category: "dangerous_command", Line: 1}},
			BlockedPatterns: []string{"dangerous_command"},
		},
		Hash: "deadbeef",
	}}
	r := setupRouter(uc, "")

	status, env := do(t, r, http.MethodPost, "/api/v1/skills/scan", `{"content":"rm -rf /"}`, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(env.Data), `"severity":"high"`) || !strings.Contains(string(env.Data), `"metadata":null`) {
		t.Errorf("unexpected data %s", env.Data)
	}

	status, env = do(t, r, http.MethodPost, "/api/v1/skills/scan", `{}`, nil)
	if status != http.StatusBadRequest || env.Error.Code != CodeInvalidInput {
		t.Errorf("expected 400 for missing content, got %d", status)
	}
}

func TestSync(t *testing.T) {
	uc := &mockUseCase{sync: model.SyncResult{Imported: 2, Failed: 1, Errors: []string{"tools/x: boom"}}}
	r := setupRouter(uc, "secret")
	body := `{"owner":"acme","repo":"tools"}`

	status, _ := do(t, r, http.MethodPost, "/api/v1/admin/sync", body, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", status)
	}

	status, env := do(t, r, http.MethodPost, "/api/v1/admin/sync", body, map[string]string{middleware.HeaderAPIKey: "secret"})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, env.Error)
	}
	if uc.syncOwner != "acme" || uc.syncRepo != "tools" {
		t.Errorf("unexpected sync call %s/%s", uc.syncOwner, uc.syncRepo)
	}
	var data syncResp
	json.Unmarshal(env.Data, &data)
	if data.Imported != 2 || data.Failed != 1 || len(data.Errors) != 1 {
		t.Errorf("unexpected data %s", env.Data)
	}
}

func TestSync_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"missing repo", `{"owner":"acme"}`, nil, http.StatusBadRequest},
		{"slash in owner", `{"owner":"acme/x","repo":"tools"}`, nil, http.StatusBadRequest},
		{"repo not found", `{"owner":"acme","repo":"tools"}`, skill.ErrRepositoryNotFound, http.StatusNotFound},
		{"upstream failure", `{"owner":"acme","repo":"tools"}`, errors.New("github down"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockUseCase{err: tt.err}, "")
			if status, _ := do(t, r, http.MethodPost, "/api/v1/admin/sync", tt.body, nil); status != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, status)
			}
		})
	}
}

func TestPublish(t *testing.T) {
	s := sampleSkill()
	s.Source = model.SourceDirect
	uc := &mockUseCase{publish: skill.PublishOutput{Skill: s}}
	r := setupRouter(uc, "secret")
	body := `{"skill_md":"# PDF","slug":" acme-pdf ","source_url":"https://github.com/acme/tools"}`

	status, env := do(t, r, http.MethodPost, "/api/v1/skills", body, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", status)
	}
	if uc.publishInput.SkillMD != "" {
		t.Errorf("use case reached without key: %+v", uc.publishInput)
	}

	key := map[string]string{middleware.HeaderAPIKey: "secret"}
	status, env = do(t, r, http.MethodPost, "/api/v1/skills", body, key)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("expected 200, got %d %+v", status, env.Error)
	}
	if uc.publishInput.Slug != "acme-pdf" || uc.publishInput.SourceURL != "https://github.com/acme/tools" || uc.publishInput.SkillMD != "# PDF" {
		t.Errorf("unexpected input %+v", uc.publishInput)
	}
	var data publishResp
	json.Unmarshal(env.Data, &data)
	if data.Slug != "acme-pdf" || !data.Created || data.Tier != model.TierCommunity || data.Hash != "abc" {
		t.Errorf("unexpected data %s", env.Data)
	}
}

func TestPublish_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing skill_md", `{"slug":"x"}`, nil, http.StatusBadRequest, CodeInvalidInput},
		{"slug taken", `{"skill_md":"# PDF"}`, fmt.Errorf("%w: acme-pdf", skill.ErrSkillExists), http.StatusConflict, CodeSkillExists},
		{"bad skill md", `{"skill_md":"nothing"}`, fmt.Errorf("%w: missing name", skill.ErrInvalidSkillMD), http.StatusBadRequest, CodeInvalidSkillMD},
		{"bad source url", `{"skill_md":"# PDF","source_url":"ftp://x"}`, fmt.Errorf("%w: source_url", skill.ErrInvalidInput), http.StatusBadRequest, CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockUseCase{err: tt.err}, "")
			status, env := do(t, r, http.MethodPost, "/api/v1/skills", tt.body, nil)
			if status != tt.wantStatus || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("expected %d %s, got %d %+v", tt.wantStatus, tt.wantCode, status, env.Error)
			}
		})
	}

	r := setupRouter(&mockUseCase{err: fmt.Errorf("%w: missing name", skill.ErrInvalidSkillMD)}, "")
	_, env := do(t, r, http.MethodPost, "/api/v1/skills", `{"skill_md":"nothing"}`, nil)
	if env.Error == nil || env.Error.Message != "Failed to parse SKILL.md: missing name" {
		t.Errorf("unexpected parse error message %+v", env.Error)
	}
}

func TestStats(t *testing.T) {
	uc := &mockUseCase{stats: model.RegistryStats{TotalSkills: 3, TrustedSkills: 1, CommunitySkills: 2, TotalDownloads: 7, TrustedOrgs: 1}}
	r := setupRouter(uc, "secret")

	status, env := do(t, r, http.MethodGet, "/api/v1/stats", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 without key, got %d", status)
	}
	var data statsResp
	json.Unmarshal(env.Data, &data)
	if data.TotalSkills != 3 || data.CommunitySkills != 2 || data.TotalDownloads != 7 || data.TrustedOrgs != 1 {
		t.Errorf("unexpected data %s", env.Data)
	}
	if !strings.Contains(string(env.Data), `"total_downloads":7`) {
		t.Errorf("expected snake_case keys, got %s", env.Data)
	}

	r = setupRouter(&mockUseCase{err: errors.New("db closed")}, "")
	if status, _ := do(t, r, http.MethodGet, "/api/v1/stats", "", nil); status != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", status)
	}
}
