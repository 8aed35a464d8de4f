package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/cache"
	"github.com/futig/career-agent/internal/pkg/formatter"
	"github.com/futig/career-agent/internal/pkg/validator"
	"github.com/futig/career-agent/internal/telegram/keyboard"
	"github.com/futig/career-agent/internal/telegram/render"
	"github.com/futig/career-agent/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap/zaptest"
)

const (
	userID = int64(7)
	chatID = int64(70)

	profileText = "Backend developer, five years of Python, wants to move to Go."
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, nil
}

func (s *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (s *fakeSender) messages() []tgbotapi.MessageConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range s.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (s *fakeSender) lastText(t *testing.T) string {
	t.Helper()
	msgs := s.messages()
	if len(msgs) == 0 {
		t.Fatal("no messages sent")
	}
	return msgs[len(msgs)-1].Text
}

type fakeAnalyzer struct {
	result entity.AnalysisResult
	err    error
	calls  int
	input  string
}

func (f *fakeAnalyzer) Execute(_ context.Context, input entity.ProfileAnalysisInput) (entity.AnalysisResult, error) {
	f.calls++
	f.input = input.ProfileText
	return f.result, f.err
}

type fakeFiles struct {
	data   []byte
	err    error
	fileID string
}

func (f *fakeFiles) Download(_ context.Context, fileID string) ([]byte, error) {
	f.fileID = fileID
	return f.data, f.err
}

type fakeRoadmaps struct {
	result entity.RoadmapResult
	err    error
	input  entity.AnalysisResult
}

func (f *fakeRoadmaps) Execute(_ context.Context, input entity.AnalysisResult) (entity.RoadmapResult, error) {
	f.input = input
	return f.result, f.err
}

type fakeRecommender struct {
	result    entity.ResourceSet
	err       error
	milestone string
}

func (f *fakeRecommender) Execute(_ context.Context, input entity.ResourceInput) (entity.ResourceSet, error) {
	f.milestone = input.Milestone
	return f.result, f.err
}

type fakeCoach struct {
	err error
}

func (f *fakeCoach) Converse(_ context.Context, session *entity.ChatSession, question string) (entity.ChatTurn, error) {
	session.Append(entity.ChatTurn{Role: entity.ChatRoleUser, Content: question})
	if f.err != nil {
		return entity.ChatTurn{}, f.err
	}
	reply := entity.ChatTurn{Role: entity.ChatRoleModel, Content: "try smaller steps"}
	session.Append(reply)
	return reply, nil
}

type fixture struct {
	sender      *fakeSender
	states      *state.Manager
	analyzer    *fakeAnalyzer
	roadmaps    *fakeRoadmaps
	recommender *fakeRecommender
	coach       *fakeCoach
	files       *fakeFiles
	deps        Deps
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		sender: &fakeSender{},
		states: state.NewManager(cache.NewMemoryStore(time.Hour, time.Minute), time.Hour),
		analyzer: &fakeAnalyzer{result: entity.AnalysisResult{
			Analysis:    "Strong backend base.",
			Suggestions: []string{"Learn Go", "Learn Kubernetes"},
		}},
		roadmaps: &fakeRoadmaps{result: entity.RoadmapResult{Phases: []entity.Phase{
			{Title: "Foundations", Milestones: []string{"Complete the Go tour", "Write a CLI tool"}},
		}}},
		recommender: &fakeRecommender{result: entity.ResourceSet{Resources: []entity.Resource{
			{Title: "Tour", URL: "https://go.dev/tour", Type: entity.ResourceTypeInteractiveTutorial, Description: "d"},
		}}},
		coach: &fakeCoach{},
		files: &fakeFiles{},
	}
	f.deps = Deps{
		Analyzer:    f.analyzer,
		Roadmaps:    f.roadmaps,
		Recommender: f.recommender,
		Coach:       f.coach,
		Validator:   validator.NewInputValidator(),
		Formatters:  formatter.NewFactory(),
		Files:       f.files,
		States:      f.states,
		Sender:      NewMessageSender(f.sender, zaptest.NewLogger(t)),
		Keyboards:   keyboard.NewBuilder(),
	}
	return f
}

func (f *fixture) load(t *testing.T) *state.UserState {
	t.Helper()
	st, err := f.states.Get(context.Background(), userID, chatID)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	return st
}

func (f *fixture) press(t *testing.T, data string) {
	t.Helper()
	msg := &Message{ChatID: chatID, UserID: userID, CallbackData: data}
	if err := NewCallbackHandler(f.deps).Handle(testContext(t), msg, f.load(t)); err != nil {
		t.Fatalf("callback %s: %v", data, err)
	}
}

func (f *fixture) withRoadmap(t *testing.T) {
	t.Helper()
	st := f.load(t)
	st.Step = state.StepReviewing
	st.Analysis = &f.analyzer.result
	st.Roadmap = &f.roadmaps.result
	if err := f.states.Save(context.Background(), st); err != nil {
		t.Fatalf("save state: %v", err)
	}
}

func testContext(t *testing.T) context.Context {
	return ctxzap.ToContext(context.Background(), zaptest.NewLogger(t))
}

func TestProfileHandlerRejectsShortProfile(t *testing.T) {
	f := newFixture(t)
	msg := &Message{ChatID: chatID, UserID: userID, Text: "too short"}

	if err := NewProfileHandler(f.deps).Handle(testContext(t), msg, f.load(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.analyzer.calls != 0 {
		t.Fatal("analyzer must not run on invalid input")
	}
	if !strings.Contains(f.sender.lastText(t), "profile_text") {
		t.Fatalf("expected validation message, got %q", f.sender.lastText(t))
	}
	if f.load(t).Step != state.StepAwaitingProfile {
		t.Fatal("state must not advance")
	}
}

func TestProfileHandlerStoresAnalysis(t *testing.T) {
	f := newFixture(t)
	msg := &Message{ChatID: chatID, UserID: userID, Text: profileText}

	if err := NewProfileHandler(f.deps).Handle(testContext(t), msg, f.load(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := f.load(t)
	if st.Step != state.StepReviewing || st.Analysis == nil || st.Analysis.Analysis != "Strong backend base." {
		t.Fatalf("unexpected state %+v", st)
	}

	msgs := f.sender.messages()
	last := msgs[len(msgs)-1]
	if !strings.Contains(last.Text, "1. Learn Go") {
		t.Fatalf("analysis not rendered: %q", last.Text)
	}
	if _, ok := last.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); !ok {
		t.Fatal("expected analysis keyboard")
	}
	if len(f.sender.requests) == 0 {
		t.Fatal("expected a typing action")
	}
}

func TestProfileHandlerReportsGenerationFailure(t *testing.T) {
	f := newFixture(t)
	f.analyzer.err = &entity.GenerationError{Op: "generate content", Err: errors.New("quota")}
	msg := &Message{ChatID: chatID, UserID: userID, Text: profileText}

	if err := NewProfileHandler(f.deps).Handle(testContext(t), msg, f.load(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.sender.lastText(t); got != render.ErrServiceUnavailable {
		t.Fatalf("got %q", got)
	}
	if f.load(t).Step != state.StepAwaitingProfile {
		t.Fatal("state must not advance on failure")
	}
}

func TestProfileHandlerReadsResumeFile(t *testing.T) {
	f := newFixture(t)
	f.files.data = []byte("Backend developer,\n\nfive years of Python,\twants to move to Go.")
	msg := &Message{ChatID: chatID, UserID: userID, Document: &Document{
		FileID:   "file-1",
		FileName: "resume.txt",
		MimeType: "text/plain",
	}}

	if err := NewProfileHandler(f.deps).Handle(testContext(t), msg, f.load(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.files.fileID != "file-1" {
		t.Fatalf("downloaded %q", f.files.fileID)
	}
	if f.analyzer.input != profileText {
		t.Fatalf("analyzer got %q", f.analyzer.input)
	}
	if f.load(t).Step != state.StepReviewing {
		t.Fatal("state should advance after a resume is analyzed")
	}
	if got := f.sender.messages()[0].Text; got != render.MsgReadingResume {
		t.Fatalf("expected reading notice first, got %q", got)
	}
}

func TestProfileHandlerResumeFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		data []byte
		err  error
		want string
	}{
		{
			name: "too large",
			doc:  Document{FileID: "f", FileName: "cv.pdf"},
			err:  fmt.Errorf("%w: more than 10 bytes", entity.ErrDocumentTooLarge),
			want: render.ErrFileTooLarge,
		},
		{
			name: "unsupported type",
			doc:  Document{FileID: "f", FileName: "photo.png", MimeType: "image/png"},
			data: []byte("\x89PNG"),
			want: render.ErrUnsupportedFile,
		},
		{
			name: "too little text",
			doc:  Document{FileID: "f", FileName: "cv.txt", MimeType: "text/plain"},
			data: []byte("Go dev"),
			want: "profile_text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.files.data, f.files.err = tt.data, tt.err
			doc := tt.doc
			msg := &Message{ChatID: chatID, UserID: userID, Document: &doc}

			if err := NewProfileHandler(f.deps).Handle(testContext(t), msg, f.load(t)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !strings.Contains(f.sender.lastText(t), tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, f.sender.lastText(t))
			}
			if f.analyzer.calls != 0 {
				t.Fatal("analyzer must not run")
			}
			if f.load(t).Step != state.StepAwaitingProfile {
				t.Fatal("state must not advance")
			}
		})
	}
}

func TestCallbackBuildsRoadmap(t *testing.T) {
	f := newFixture(t)
	st := f.load(t)
	st.Step = state.StepReviewing
	st.Analysis = &f.analyzer.result
	_ = f.states.Save(context.Background(), st)

	f.press(t, "action:roadmap")

	if f.roadmaps.input.Analysis != "Strong backend base." {
		t.Fatalf("roadmap built from wrong analysis: %+v", f.roadmaps.input)
	}
	if got := f.load(t); got.Roadmap == nil || len(got.Roadmap.Phases) != 1 {
		t.Fatalf("roadmap not stored: %+v", got.Roadmap)
	}
	if !strings.Contains(f.sender.lastText(t), "1.2 Write a CLI tool") {
		t.Fatalf("roadmap not rendered: %q", f.sender.lastText(t))
	}
}

func TestCallbackRoadmapWithoutAnalysis(t *testing.T) {
	f := newFixture(t)

	f.press(t, "action:roadmap")

	if got := f.sender.lastText(t); got != render.ErrNoAnalysis {
		t.Fatalf("got %q", got)
	}
}

func TestCallbackRecommendsResources(t *testing.T) {
	f := newFixture(t)
	f.withRoadmap(t)

	f.press(t, "res:0.1")

	if f.recommender.milestone != "Write a CLI tool" {
		t.Fatalf("wrong milestone %q", f.recommender.milestone)
	}
	if !strings.Contains(f.sender.lastText(t), "https://go.dev/tour") {
		t.Fatalf("resources not rendered: %q", f.sender.lastText(t))
	}
}

func TestCallbackResourceErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
		want string
	}{
		{name: "no results", data: "res:0.0", err: &entity.NoResultsError{Query: "q"}, want: render.ErrNoResources},
		{name: "ungrounded", data: "res:0.0", err: &entity.ValidationError{Contract: "resources", Field: "resources[0].url", Rule: "grounded"}, want: render.ErrBadGeneration},
		{name: "unknown milestone", data: "res:3.0", want: render.ErrUnknownMilestone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.withRoadmap(t)
			f.recommender.err = tt.err

			f.press(t, tt.data)

			if got := f.sender.lastText(t); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStuckOpensChatAndChatConverses(t *testing.T) {
	f := newFixture(t)
	f.withRoadmap(t)

	f.press(t, "stuck:0.0")

	st := f.load(t)
	if st.Step != state.StepChatting || st.Chat == nil || st.Chat.Milestone != "Complete the Go tour" {
		t.Fatalf("chat not opened: %+v", st)
	}

	msg := &Message{ChatID: chatID, UserID: userID, Text: "I keep failing the concurrency section"}
	if err := NewChatHandler(f.deps).Handle(testContext(t), msg, st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.sender.lastText(t); got != "try smaller steps" {
		t.Fatalf("got %q", got)
	}
	saved := f.load(t)
	if len(saved.Chat.Turns) != 2 || saved.Chat.State() != entity.ChatSessionStateActive {
		t.Fatalf("transcript not saved: %+v", saved.Chat)
	}
}

func TestChatFailureDoesNotSaveDanglingTurn(t *testing.T) {
	f := newFixture(t)
	f.withRoadmap(t)
	f.press(t, "stuck:0.0")
	f.coach.err = &entity.GenerationError{Op: "generate chat response", Err: errors.New("down")}

	msg := &Message{ChatID: chatID, UserID: userID, Text: "help"}
	if err := NewChatHandler(f.deps).Handle(testContext(t), msg, f.load(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.sender.lastText(t); got != render.ErrServiceUnavailable {
		t.Fatalf("got %q", got)
	}
	if turns := f.load(t).Chat.Turns; len(turns) != 0 {
		t.Fatalf("expected no saved turns, got %d", len(turns))
	}
}

func TestEndChatReturnsToRoadmap(t *testing.T) {
	f := newFixture(t)
	f.withRoadmap(t)
	f.press(t, "stuck:0.0")

	f.press(t, "action:end_chat")

	st := f.load(t)
	if st.Step != state.StepReviewing || st.Chat != nil {
		t.Fatalf("chat not closed: %+v", st)
	}
	if got := f.sender.lastText(t); got != render.MsgChatEnded {
		t.Fatalf("got %q", got)
	}
}

func TestDownloadSendsDocument(t *testing.T) {
	f := newFixture(t)
	f.withRoadmap(t)

	f.press(t, "dl:markdown")

	var doc *tgbotapi.DocumentConfig
	for _, c := range f.sender.sent {
		if d, ok := c.(tgbotapi.DocumentConfig); ok {
			doc = &d
		}
	}
	if doc == nil {
		t.Fatal("no document sent")
	}
	file, ok := doc.File.(tgbotapi.FileBytes)
	if !ok || file.Name != "roadmap.md" {
		t.Fatalf("unexpected file %+v", doc.File)
	}
	if !strings.HasPrefix(string(file.Bytes), "# "+formatter.DefaultTitle) {
		t.Fatalf("unexpected document content %q", file.Bytes)
	}
}

func TestDownloadUnknownFormat(t *testing.T) {
	f := newFixture(t)
	f.withRoadmap(t)

	f.press(t, "dl:xml")

	if got := f.sender.lastText(t); !strings.Contains(got, "unsupported format") {
		t.Fatalf("got %q", got)
	}
}

func TestRestartResetsState(t *testing.T) {
	f := newFixture(t)
	f.withRoadmap(t)

	f.press(t, "action:restart")

	if st := f.load(t); st.Step != state.StepAwaitingProfile || st.Roadmap != nil {
		t.Fatalf("state not reset: %+v", st)
	}
	if got := f.sender.lastText(t); got != render.MsgAskProfile {
		t.Fatalf("got %q", got)
	}
}
