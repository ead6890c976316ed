package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jarscn/domain"
)

type mockJarService struct {
	mock.Mock
}

func (m *mockJarService) Analyze(ctx context.Context, req domain.JarRequest) (*domain.JarResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JarResponse), args.Error(1)
}

func (m *mockJarService) AnalyzeArchive(ctx context.Context, path string, req domain.JarRequest) (*domain.ArchiveReport, error) {
	args := m.Called(ctx, path, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArchiveReport), args.Error(1)
}

type mockJarFileReader struct {
	mock.Mock
}

func (m *mockJarFileReader) CollectJarFiles(paths []string, recursive bool) ([]string, error) {
	args := m.Called(paths, recursive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockJarFileReader) IsValidJarFile(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *mockJarFileReader) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

type mockJarFormatter struct {
	mock.Mock
}

func (m *mockJarFormatter) Format(response *domain.JarResponse, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockJarFormatter) Write(response *domain.JarResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	if writer != nil {
		_, _ = io.WriteString(writer, "report:"+string(format))
	}
	return args.Error(0)
}

type mockJarConfigLoader struct {
	mock.Mock
}

func (m *mockJarConfigLoader) LoadConfig(path string) (*domain.JarRequest, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JarRequest), args.Error(1)
}

func (m *mockJarConfigLoader) LoadConfigFor(target string) (*domain.JarRequest, error) {
	args := m.Called(target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JarRequest), args.Error(1)
}

func (m *mockJarConfigLoader) LoadDefaultConfig() *domain.JarRequest {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.JarRequest)
}

func (m *mockJarConfigLoader) MergeConfig(base *domain.JarRequest, override *domain.JarRequest) *domain.JarRequest {
	return m.Called(base, override).Get(0).(*domain.JarRequest)
}

type recordingReportWriter struct {
	paths []string
}

func (w *recordingReportWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error {
	w.paths = append(w.paths, outputPath)
	if writer == nil {
		writer = io.Discard
	}
	return writeFunc(writer)
}

func validJarRequest(out io.Writer) domain.JarRequest {
	req := *domain.DefaultJarRequest()
	req.Paths = []string{"/libs/app.jar"}
	req.OutputWriter = out
	return req
}

func sampleResponse() *domain.JarResponse {
	return &domain.JarResponse{
		Archives: []domain.ArchiveReport{{JarFileName: "app.jar", TotalClasses: 3}},
		Summary:  domain.JarSummary{ArchivesAnalyzed: 1, TotalClasses: 3},
	}
}

func TestJarUseCase_Execute(t *testing.T) {
	service := &mockJarService{}
	reader := &mockJarFileReader{}
	formatter := &mockJarFormatter{}

	var out bytes.Buffer
	req := validJarRequest(&out)
	response := sampleResponse()

	reader.On("CollectJarFiles", []string{"/libs/app.jar"}, true).Return([]string{"/libs/app.jar"}, nil)
	reader.On("FileExists", "/libs/app.jar").Return(true, nil)
	reader.On("IsValidJarFile", "/libs/app.jar").Return(true)
	service.On("Analyze", mock.Anything, mock.MatchedBy(func(r domain.JarRequest) bool {
		return len(r.Paths) == 1 && r.Paths[0] == "/libs/app.jar"
	})).Return(response, nil)
	formatter.On("Write", response, domain.OutputFormatText, mock.Anything).Return(nil)

	uc, err := NewJarUseCaseBuilder().
		WithService(service).
		WithFileReader(reader).
		WithFormatter(formatter).
		BuildWithDefaults()
	require.NoError(t, err)

	require.NoError(t, uc.Execute(context.Background(), req))
	assert.Equal(t, "report:text", out.String())
	service.AssertExpectations(t)
	reader.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestJarUseCase_Execute_JSONOutputPath(t *testing.T) {
	service := &mockJarService{}
	reader := &mockJarFileReader{}
	formatter := &mockJarFormatter{}
	writer := &recordingReportWriter{}

	req := validJarRequest(io.Discard)
	req.JSONOutputPath = "report.json"
	response := sampleResponse()

	reader.On("CollectJarFiles", mock.Anything, true).Return([]string{"/libs/app.jar"}, nil)
	reader.On("FileExists", "/libs/app.jar").Return(true, nil)
	reader.On("IsValidJarFile", "/libs/app.jar").Return(true)
	service.On("Analyze", mock.Anything, mock.Anything).Return(response, nil)
	formatter.On("Write", response, domain.OutputFormatJSON, mock.Anything).Return(nil).Once()
	formatter.On("Write", response, domain.OutputFormatText, mock.Anything).Return(nil).Once()

	uc, err := NewJarUseCaseBuilder().
		WithService(service).
		WithFileReader(reader).
		WithFormatter(formatter).
		WithOutputWriter(writer).
		Build()
	require.NoError(t, err)

	require.NoError(t, uc.Execute(context.Background(), req))
	assert.Equal(t, []string{"report.json", ""}, writer.paths)
	formatter.AssertExpectations(t)
}

func TestJarUseCase_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.JarRequest)
	}{
		{"no paths", func(r *domain.JarRequest) { r.Paths = nil }},
		{"no output", func(r *domain.JarRequest) { r.OutputWriter = nil }},
		{"negative top", func(r *domain.JarRequest) { r.Top = -1 }},
		{"negative workers", func(r *domain.JarRequest) { r.Workers = -2 }},
		{"bad format", func(r *domain.JarRequest) { r.OutputFormat = "xml" }},
		{"bad sort", func(r *domain.JarRequest) { r.SortBy = "size" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewJarUseCase(&mockJarService{}, &mockJarFileReader{}, &mockJarFormatter{}, nil)
			req := validJarRequest(io.Discard)
			tt.mutate(&req)

			err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
		})
	}
}

func TestJarUseCase_InputFileRules(t *testing.T) {
	tests := []struct {
		name    string
		exists  bool
		isJar   bool
		wantMsg string
	}{
		{"not a regular file", false, true, "not a file"},
		{"wrong extension", true, false, "must be a jar file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &mockJarFileReader{}
			reader.On("CollectJarFiles", mock.Anything, true).Return([]string{"/libs/app.zip"}, nil)
			reader.On("FileExists", "/libs/app.zip").Return(tt.exists, nil)
			reader.On("IsValidJarFile", "/libs/app.zip").Return(tt.isJar)

			uc := NewJarUseCase(&mockJarService{}, reader, &mockJarFormatter{}, nil)
			req := validJarRequest(io.Discard)
			req.Paths = []string{"/libs/app.zip"}

			err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestJarUseCase_NoJarsFound(t *testing.T) {
	reader := &mockJarFileReader{}
	reader.On("CollectJarFiles", mock.Anything, true).Return([]string{}, nil)

	uc := NewJarUseCase(&mockJarService{}, reader, &mockJarFormatter{}, nil)
	err := uc.Execute(context.Background(), validJarRequest(io.Discard))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no jar files found")
}

func TestJarUseCase_ServiceError(t *testing.T) {
	service := &mockJarService{}
	reader := &mockJarFileReader{}
	reader.On("CollectJarFiles", mock.Anything, true).Return([]string{"/libs/app.jar"}, nil)
	reader.On("FileExists", "/libs/app.jar").Return(true, nil)
	reader.On("IsValidJarFile", "/libs/app.jar").Return(true)
	service.On("Analyze", mock.Anything, mock.Anything).Return(nil, context.Canceled)

	uc := NewJarUseCase(service, reader, &mockJarFormatter{}, nil)
	_, err := uc.AnalyzeAndReturn(context.Background(), validJarRequest(io.Discard))
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeAnalysisError, domain.ErrorCode(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJarUseCase_ConfigMerge(t *testing.T) {
	jar := "/libs/app.jar"

	tests := []struct {
		name       string
		configPath string
		method     string
		wantArg    string
	}{
		{"explicit file", "/etc/jarscn.yaml", "LoadConfig", "/etc/jarscn.yaml"},
		{"discovery from the first input", "", "LoadConfigFor", jar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockJarService{}
			reader := &mockJarFileReader{}
			loader := &mockJarConfigLoader{}

			req := validJarRequest(io.Discard)
			req.ConfigPath = tt.configPath

			configReq := domain.DefaultJarRequest()
			merged := req
			merged.Top = 7

			loader.On(tt.method, tt.wantArg).Return(configReq, nil)
			loader.On("MergeConfig", configReq, mock.Anything).Return(&merged)
			reader.On("CollectJarFiles", []string{jar}, true).Return([]string{jar}, nil)
			reader.On("FileExists", jar).Return(true, nil)
			reader.On("IsValidJarFile", jar).Return(true)
			service.On("Analyze", mock.Anything, mock.MatchedBy(func(r domain.JarRequest) bool {
				return r.Top == 7
			})).Return(sampleResponse(), nil)

			uc := NewJarUseCase(service, reader, &mockJarFormatter{}, loader)
			_, err := uc.AnalyzeAndReturn(context.Background(), req)
			require.NoError(t, err)
			loader.AssertExpectations(t)
			service.AssertExpectations(t)
		})
	}
}

func TestJarUseCase_ConfigError(t *testing.T) {
	loader := &mockJarConfigLoader{}
	loader.On("LoadConfig", "bad.toml").Return(nil, errors.New("parse error"))

	uc := NewJarUseCase(&mockJarService{}, &mockJarFileReader{}, &mockJarFormatter{}, loader)
	req := validJarRequest(io.Discard)
	req.ConfigPath = "bad.toml"

	err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
}

func TestJarUseCaseBuilder_RequiresDependencies(t *testing.T) {
	_, err := NewJarUseCaseBuilder().Build()
	assert.Error(t, err)

	_, err = NewJarUseCaseBuilder().WithService(&mockJarService{}).Build()
	assert.Error(t, err)

	_, err = NewJarUseCaseBuilder().WithService(&mockJarService{}).WithFileReader(&mockJarFileReader{}).Build()
	assert.Error(t, err)
}
