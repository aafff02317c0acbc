package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"cardcheck/internal/liveness"
	"cardcheck/internal/liveness/handler/mocks"
	"cardcheck/internal/motion"
	"cardcheck/internal/spoof"
	dErrors "cardcheck/pkg/domain-errors"
	audit "cardcheck/pkg/platform/audit"
)

// =============================================================================
// Handler Test Suite
// =============================================================================

type LivenessHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	now     time.Time
}

func TestLivenessHandlerSuite(t *testing.T) {
	suite.Run(t, new(LivenessHandlerSuite))
}

func (s *LivenessHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
	s.now = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
}

func (s *LivenessHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *LivenessHandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *LivenessHandlerSuite) stored(frames int) *liveness.StoredSequence {
	cfg := motion.DefaultConfig()
	seq, err := motion.Generate(cfg, motion.NewSeededSource(1))
	s.Require().NoError(err)
	seq.Frames = seq.Frames[:frames]
	return &liveness.StoredSequence{
		ID:        uuid.New(),
		CreatedAt: s.now,
		ExpiresAt: s.now.Add(15 * time.Minute),
		Sequence:  seq,
	}
}

func (s *LivenessHandlerSuite) liveRecord() *liveness.ClassificationRecord {
	return &liveness.ClassificationRecord{
		ID:         uuid.New(),
		FrameCount: 45,
		Result:     *liveness.BuildResult(liveness.Analysis{DepthVariation: 0.865, HologramPresence: 0.482, MotionConsistency: 0.667, LightingVariation: 0.379}),
		CreatedAt:  s.now,
	}
}

// =============================================================================
// Sequence Endpoint Tests
// =============================================================================

func (s *LivenessHandlerSuite) TestGenerateWithEmptyBodyUsesDefaults() {
	seq := s.stored(45)
	s.service.EXPECT().Generate(gomock.Any(), motion.DefaultConfig()).Return(seq, nil)

	w := s.do(http.MethodPost, "/liveness/sequences", "")

	s.Equal(http.StatusCreated, w.Code)
	body := s.decode(w)
	s.Equal(seq.ID.String(), body["id"])
	s.EqualValues(45, body["frame_count"])
	s.Len(body["frames"], 45)
}

func (s *LivenessHandlerSuite) TestGenerateMergesOverrides() {
	want := motion.DefaultConfig()
	want.DurationSeconds = 2
	want.MotionPattern = motion.PatternTiltOnly
	want.IncludeNoise = false
	s.service.EXPECT().Generate(gomock.Any(), want).Return(s.stored(30), nil)

	w := s.do(http.MethodPost, "/liveness/sequences",
		`{"duration_seconds":2,"motion_pattern":"tilt-only","include_noise":false}`)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *LivenessHandlerSuite) TestGenerateRejectsInvalidConfig() {
	cases := map[string]string{
		"zero fps":         `{"frames_per_second":0}`,
		"negative seconds": `{"duration_seconds":-1}`,
		"unknown pattern":  `{"motion_pattern":"spin"}`,
		"too many frames":  `{"duration_seconds":1000,"frames_per_second":60}`,
	}
	for name, body := range cases {
		s.Run(name, func() {
			w := s.do(http.MethodPost, "/liveness/sequences", body)
			s.Equal(http.StatusBadRequest, w.Code)
			s.Equal("validation_error", s.decode(w)["error"])
		})
	}
}

func (s *LivenessHandlerSuite) TestGetSequence() {
	seq := s.stored(12)
	s.service.EXPECT().GetSequence(gomock.Any(), seq.ID).Return(seq, nil)

	w := s.do(http.MethodGet, "/liveness/sequences/"+seq.ID.String(), "")
	s.Equal(http.StatusOK, w.Code)
	s.EqualValues(12, s.decode(w)["frame_count"])
}

func (s *LivenessHandlerSuite) TestGetSequenceNotFound() {
	id := uuid.New()
	s.service.EXPECT().GetSequence(gomock.Any(), id).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "sequence not found"))

	w := s.do(http.MethodGet, "/liveness/sequences/"+id.String(), "")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("not_found", s.decode(w)["error"])
}

func (s *LivenessHandlerSuite) TestInvalidPathID() {
	w := s.do(http.MethodGet, "/liveness/sequences/not-a-uuid", "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid sequence id", s.decode(w)["error_description"])
}

// =============================================================================
// Spoof Endpoint Tests
// =============================================================================

func (s *LivenessHandlerSuite) TestSpoofSequence() {
	baseline := uuid.New()
	spoofed := s.stored(45)
	spoofed.SpoofType = "paper"
	spoofed.BaselineID = &baseline
	s.service.EXPECT().Spoof(gomock.Any(), baseline, spoof.TypePaper).Return(spoofed, nil)

	w := s.do(http.MethodPost, "/liveness/sequences/"+baseline.String()+"/spoof", `{"spoof_type":" Paper "}`)
	s.Equal(http.StatusCreated, w.Code)
	body := s.decode(w)
	s.Equal("paper", body["spoof_type"])
	s.Equal(baseline.String(), body["baseline_id"])
}

func (s *LivenessHandlerSuite) TestSpoofDefault() {
	s.service.EXPECT().SpoofDefault(gomock.Any(), spoof.TypeScreen).Return(s.stored(45), nil)

	w := s.do(http.MethodPost, "/liveness/spoof", `{"spoof_type":"screen"}`)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *LivenessHandlerSuite) TestSpoofRejectsUnknownType() {
	for _, body := range []string{`{"spoof_type":"hologram"}`, `{}`} {
		w := s.do(http.MethodPost, "/liveness/spoof", body)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("validation_error", s.decode(w)["error"])
	}
}

// =============================================================================
// Classification Endpoint Tests
// =============================================================================

func (s *LivenessHandlerSuite) TestClassifyLiveSequence() {
	record := s.liveRecord()
	s.service.EXPECT().Classify(gomock.Any(), gomock.Len(45)).Return(record, nil)

	frames, err := json.Marshal(map[string]any{"frames": s.stored(45).Sequence.Frames})
	s.Require().NoError(err)

	w := s.do(http.MethodPost, "/liveness/classify", string(frames))
	s.Equal(http.StatusOK, w.Code)

	body := s.decode(w)
	s.Equal(true, body["is_live"])
	s.EqualValues(90, body["score"])
	s.EqualValues(100, body["max_score"])
	s.InDelta(0.9, body["confidence"], 1e-9)
	s.Equal("Likely authentic ID card", body["recommendation"])
	s.Contains(body, "analysis")
	breakdown := body["breakdown"].(map[string]any)
	s.EqualValues(30, breakdown["depth_variation"])
	s.NotContains(body, "reason")
}

func (s *LivenessHandlerSuite) TestClassifyShortCircuitShape() {
	record := &liveness.ClassificationRecord{
		ID:         uuid.New(),
		FrameCount: 3,
		Result:     liveness.Result{Reason: liveness.ReasonInsufficientFrames},
		CreatedAt:  s.now,
	}
	s.service.EXPECT().Classify(gomock.Any(), gomock.Len(3)).Return(record, nil)

	w := s.do(http.MethodPost, "/liveness/classify", `{"frames":[{},{},{}]}`)
	s.Equal(http.StatusOK, w.Code)

	body := s.decode(w)
	s.Equal(false, body["is_live"])
	s.EqualValues(0, body["confidence"])
	s.Equal("Insufficient frames", body["reason"])
	for _, key := range []string{"score", "max_score", "analysis", "recommendation", "breakdown"} {
		s.NotContains(body, key)
	}
}

func (s *LivenessHandlerSuite) TestClassifyRequestValidation() {
	cases := map[string]struct {
		body   string
		status int
		code   string
	}{
		"missing frames": {`{}`, http.StatusBadRequest, "validation_error"},
		"malformed json": {`{"frames":[`, http.StatusBadRequest, "bad_request"},
		"empty body":     {``, http.StatusBadRequest, "bad_request"},
	}
	for name, tc := range cases {
		s.Run(name, func() {
			w := s.do(http.MethodPost, "/liveness/classify", tc.body)
			s.Equal(tc.status, w.Code)
			s.Equal(tc.code, s.decode(w)["error"])
		})
	}
}

func (s *LivenessHandlerSuite) TestClassifyPropagatesFrameValidation() {
	s.service.EXPECT().Classify(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeValidation, "frame 7: lighting must be a finite number"))

	frames := make([]motion.Frame, 12)
	raw, err := json.Marshal(map[string]any{"frames": frames})
	s.Require().NoError(err)

	w := s.do(http.MethodPost, "/liveness/classify", string(raw))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.decode(w)["error_description"], "frame 7")
}

func (s *LivenessHandlerSuite) TestClassifySequence() {
	record := s.liveRecord()
	seqID := uuid.New()
	record.SequenceID = &seqID
	s.service.EXPECT().ClassifySequence(gomock.Any(), seqID).Return(record, nil)

	w := s.do(http.MethodPost, "/liveness/sequences/"+seqID.String()+"/classify", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal(seqID.String(), s.decode(w)["sequence_id"])
}

func (s *LivenessHandlerSuite) TestClassifyBatch() {
	first, second := s.liveRecord(), s.liveRecord()
	s.service.EXPECT().ClassifyBatch(gomock.Any(), gomock.Len(2)).
		Return([]*liveness.ClassificationRecord{first, second}, nil)

	w := s.do(http.MethodPost, "/liveness/classify/batch", `{"sequences":[{"frames":[]},{"frames":[{}]}]}`)
	s.Equal(http.StatusOK, w.Code)

	body := s.decode(w)
	s.EqualValues(2, body["count"])
	results := body["results"].([]any)
	s.Equal(first.ID.String(), results[0].(map[string]any)["result_id"])
	s.Equal(second.ID.String(), results[1].(map[string]any)["result_id"])
}

func (s *LivenessHandlerSuite) TestClassifyBatchValidation() {
	w := s.do(http.MethodPost, "/liveness/classify/batch", `{"sequences":[]}`)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/liveness/classify/batch", `{"sequences":[{"frames":[]},{}]}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.decode(w)["error_description"], "sequences[1]")
}

// =============================================================================
// Result Endpoint Tests
// =============================================================================

func (s *LivenessHandlerSuite) TestGetResult() {
	record := s.liveRecord()
	s.service.EXPECT().GetResult(gomock.Any(), record.ID).Return(record, nil)

	w := s.do(http.MethodGet, "/liveness/results/"+record.ID.String(), "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal(record.ID.String(), s.decode(w)["result_id"])
}

func (s *LivenessHandlerSuite) TestListResults() {
	s.service.EXPECT().ListRecentResults(gomock.Any(), 5).
		Return([]*liveness.ClassificationRecord{s.liveRecord()}, nil)

	w := s.do(http.MethodGet, "/liveness/results?limit=5", "")
	s.Equal(http.StatusOK, w.Code)
	s.EqualValues(1, s.decode(w)["count"])
}

func (s *LivenessHandlerSuite) TestListResultsDefaultsAndErrors() {
	s.service.EXPECT().ListRecentResults(gomock.Any(), 0).Return(nil, nil)
	w := s.do(http.MethodGet, "/liveness/results", "")
	s.Equal(http.StatusOK, w.Code)
	s.EqualValues(0, s.decode(w)["count"])

	w = s.do(http.MethodGet, "/liveness/results?limit=ten", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *LivenessHandlerSuite) TestListAuditEvents() {
	subject := uuid.New()

	s.Run("by subject", func() {
		s.service.EXPECT().ListAuditEvents(gomock.Any(), subject.String(), 10).
			Return([]audit.Event{{ID: uuid.New(), Action: audit.ActionClassified, SubjectID: subject.String()}}, nil)

		w := s.do(http.MethodGet, "/liveness/audit?subject_id="+subject.String()+"&limit=10", "")
		s.Equal(http.StatusOK, w.Code)
		body := s.decode(w)
		s.EqualValues(1, body["count"])
		events := body["events"].([]any)
		s.Equal("liveness_classified", events[0].(map[string]any)["action"])
	})

	s.Run("recent with empty trail", func() {
		s.service.EXPECT().ListAuditEvents(gomock.Any(), "", 0).Return(nil, nil)

		w := s.do(http.MethodGet, "/liveness/audit", "")
		s.Equal(http.StatusOK, w.Code)
		body := s.decode(w)
		s.EqualValues(0, body["count"])
		s.Equal([]any{}, body["events"])
	})

	s.Run("rejects malformed subject and limit", func() {
		w := s.do(http.MethodGet, "/liveness/audit?subject_id=nope", "")
		s.Equal(http.StatusBadRequest, w.Code)

		w = s.do(http.MethodGet, "/liveness/audit?limit=x", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("service validation error", func() {
		s.service.EXPECT().ListAuditEvents(gomock.Any(), "", -1).
			Return(nil, dErrors.New(dErrors.CodeValidation, "limit must be between 1 and 100"))

		w := s.do(http.MethodGet, "/liveness/audit?limit=-1", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// Request Validation Tests
// =============================================================================

func TestGenerateRequestRejectsNonFiniteDuration(t *testing.T) {
	inf := math.Inf(1)
	req := &GenerateRequest{DurationSeconds: &inf}
	err := req.Validate()
	if !dErrors.HasCode(err, dErrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClassifyRequestRejectsOversizedFrames(t *testing.T) {
	req := &ClassifyRequest{Frames: make([]motion.Frame, motion.MaxFrames+1)}
	if err := req.Validate(); !dErrors.HasCode(err, dErrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	empty := &ClassifyRequest{Frames: []motion.Frame{}}
	if err := empty.Validate(); err != nil {
		t.Fatalf("empty frames should be accepted, got %v", err)
	}
}

func TestFromRecordPointersAreIndependent(t *testing.T) {
	record := &liveness.ClassificationRecord{Result: *liveness.BuildResult(liveness.Analysis{DepthVariation: 0.6})}
	resp := FromRecord(record)
	*resp.Score = 1
	if record.Result.Score != 30 {
		t.Fatalf("response aliases record score")
	}
}
