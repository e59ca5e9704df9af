// Package application implements the internship intake and admin review workflow.
package application

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"sort"
	"time"
	"unicode/utf8"

	"ecotech_server/internal/dao/repository"
	"ecotech_server/internal/dto/request"
	"ecotech_server/internal/dto/respond"
	"ecotech_server/internal/model"
	"ecotech_server/internal/storage"
	"ecotech_server/pkg/constants"
	"ecotech_server/pkg/errorx"
	"ecotech_server/pkg/util/pdfcheck"

	"go.uber.org/zap"
)

// User-facing messages.
const (
	MsgSubmitFailed   = "An error occurred while submitting your application. Please try again."
	MsgUpdateFailed   = "Error updating application status"
	MsgNoResume       = "No resume found for this application"
	MsgResumeNotFound = "Resume file not found"
	MsgNotFound       = "Application not found"
)

// applicationService is the ApplicationService implementation.
type applicationService struct {
	repos   *repository.Repositories
	resumes storage.ResumeStore
	now     func() time.Time
}

// NewApplicationService injects the repositories and the resume store.
func NewApplicationService(repos *repository.Repositories, resumes storage.ResumeStore) *applicationService {
	return &applicationService{repos: repos, resumes: resumes, now: time.Now}
}

// Submit stores the resume first and then inserts the row in a transaction.
// If the insert fails the stored file is removed again so no orphan is left behind.
func (s *applicationService) Submit(ctx context.Context, req request.ApplyRequest) (*model.InternshipApplication, error) {
	if req.Resume == nil {
		return nil, errorx.New(errorx.CodeInvalidFile, "A resume is required")
	}
	data, err := readUpload(req.Resume)
	if err != nil {
		zap.L().Error("read uploaded resume", zap.Error(err))
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, MsgSubmitFailed)
	}
	if err := pdfcheck.Validate(req.Resume.Filename, data); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInvalidFile, pdfcheck.Message(err))
	}

	// One clock reading for both the stored name and applied_at.
	now := s.now()
	stored := storage.StoredName(now, req.Resume.Filename)
	resumeName, err := s.resumes.Save(ctx, stored, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		zap.L().Error("store resume", zap.String("filename", req.Resume.Filename), zap.Error(err))
		return nil, errorx.Wrap(err, errorx.CodeStorageError, MsgSubmitFailed)
	}

	app := &model.InternshipApplication{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		College:         req.College,
		Course:          req.Course,
		YearOfStudy:     req.YearOfStudy,
		InternshipType:  req.InternshipType,
		ResumeFilename:  resumeName,
		CoverLetter:     req.CoverLetter,
		Skills:          req.Skills,
		GithubProfile:   req.GithubProfile,
		LinkedinProfile: req.LinkedinProfile,
		Status:          model.StatusPending,
		AppliedAt:       now,
	}
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		return tx.Application.Create(ctx, app)
	})
	if err != nil {
		zap.L().Error("application submission error", zap.String("email", req.Email), zap.Error(err))
		if delErr := s.resumes.Delete(ctx, resumeName); delErr != nil {
			zap.L().Error("remove orphaned resume", zap.String("resume", resumeName), zap.Error(delErr))
		}
		return nil, errorx.Wrap(err, errorx.CodeDBError, MsgSubmitFailed)
	}

	zap.L().Info("application submitted",
		zap.Uint("id", app.ID),
		zap.String("type", app.InternshipType),
		zap.String("resume", resumeName),
	)
	return app, nil
}

// readUpload reads the multipart file fully; the request body cap bounds its size.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(io.LimitReader(src, constants.MAX_CONTENT_LENGTH+1))
}

func (s *applicationService) Dashboard(ctx context.Context) (*respond.DashboardRespond, error) {
	total, err := s.repos.Application.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repos.Application.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byDomain, err := s.repos.Application.CountByDomain(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repos.Application.Recent(ctx, constants.RECENT_APPLICATIONS)
	if err != nil {
		return nil, err
	}

	stats := respond.DashboardStats{Total: total}
	for _, row := range byStatus {
		switch row.Status {
		case model.StatusPending:
			stats.Pending = row.Count
		case model.StatusReviewed:
			stats.Reviewed = row.Count
		case model.StatusAccepted:
			stats.Accepted = row.Count
		case model.StatusRejected:
			stats.Rejected = row.Count
		}
	}
	domainCounts := make(map[string]int64, len(byDomain))
	for _, row := range byDomain {
		domainCounts[row.Domain] = row.Count
	}
	stats.IT = domainCounts[model.DomainIT]
	stats.IoT = domainCounts[model.DomainIoT]
	stats.AI = domainCounts[model.DomainAI]
	for _, d := range model.Domains {
		stats.Domains = append(stats.Domains, respond.DomainCount{
			Domain:    d,
			Count:     domainCounts[d],
			Highlight: d == model.DomainIT || d == model.DomainIoT || d == model.DomainAI,
		})
	}
	return &respond.DashboardRespond{Stats: stats, Recent: recent}, nil
}

// Chart groups by month number only, so March 2024 and March 2025 share a bucket.
func (s *applicationService) Chart(ctx context.Context) (*respond.ChartRespond, error) {
	times, err := s.repos.Application.AppliedTimes(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repos.Application.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	months := make(map[int]int64)
	for _, t := range times {
		months[int(t.Month())]++
	}
	out := &respond.ChartRespond{
		Monthly: make([]respond.MonthCount, 0, len(months)),
		Status:  make([]respond.StatusCount, 0, len(byStatus)),
	}
	for m, n := range months {
		out.Monthly = append(out.Monthly, respond.MonthCount{Month: m, Count: n})
	}
	sort.Slice(out.Monthly, func(i, j int) bool { return out.Monthly[i].Month < out.Monthly[j].Month })

	for _, row := range byStatus {
		out.Status = append(out.Status, respond.StatusCount{Status: row.Status, Count: row.Count})
	}
	sort.SliceStable(out.Status, func(i, j int) bool {
		return statusRank(out.Status[i].Status) < statusRank(out.Status[j].Status)
	})
	return out, nil
}

func statusRank(status string) int {
	for i, s := range model.Statuses {
		if s == status {
			return i
		}
	}
	return len(model.Statuses)
}

func (s *applicationService) List(ctx context.Context, req request.ListApplicationsRequest) (*respond.ApplicationListRespond, error) {
	page := req.PageNumber()
	filter := repository.ApplicationFilter{
		Status:  req.StatusFilter(),
		Domain:  req.TypeFilter(),
		Search:  req.Search,
		Page:    page,
		PerPage: constants.APPLICATIONS_PER_PAGE,
	}
	items, total, err := s.repos.Application.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	statusFilter, typeFilter := req.Status, req.Type
	if statusFilter == "" {
		statusFilter = "all"
	}
	if typeFilter == "" {
		typeFilter = "all"
	}
	return &respond.ApplicationListRespond{
		Items:        items,
		Pagination:   respond.NewPagination(page, constants.APPLICATIONS_PER_PAGE, total),
		StatusFilter: statusFilter,
		TypeFilter:   typeFilter,
		Search:       req.Search,
	}, nil
}

func (s *applicationService) Get(ctx context.Context, id uint) (*model.InternshipApplication, error) {
	app, err := s.repos.Application.FindByID(ctx, id)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Wrap(err, errorx.CodeNotFound, MsgNotFound)
		}
		return nil, err
	}
	return app, nil
}

// UpdateReview returns CodeNotFound for an unknown id before looking at the form,
// and CodeInvalidParam when the status or notes are rejected. The row is untouched on any error.
func (s *applicationService) UpdateReview(ctx context.Context, id uint, req request.UpdateApplicationRequest) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if !model.IsValidStatus(req.Status) || utf8.RuneCountInString(req.Notes) > constants.NOTES_MAX_LEN {
		return errorx.New(errorx.CodeInvalidParam, MsgUpdateFailed)
	}
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		return tx.Application.UpdateReview(ctx, id, req.Status, req.Notes, s.now())
	})
	if err != nil {
		zap.L().Error("update application review", zap.Uint("id", id), zap.Error(err))
		if errorx.IsNotFound(err) {
			return errorx.Wrap(err, errorx.CodeNotFound, MsgNotFound)
		}
		return errorx.Wrap(err, errorx.CodeDBError, MsgUpdateFailed)
	}
	return nil
}

func (s *applicationService) OpenResume(ctx context.Context, id uint) (*respond.ResumeFile, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ResumeFilename == "" {
		return nil, errorx.New(errorx.CodeFileMissing, MsgNoResume)
	}
	rc, size, err := s.resumes.Open(ctx, app.ResumeFilename)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeFileMissing {
			zap.L().Warn("resume file missing", zap.Uint("id", id), zap.String("resume", app.ResumeFilename))
			return nil, errorx.Wrap(err, errorx.CodeFileMissing, MsgResumeNotFound)
		}
		zap.L().Error("open resume", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &respond.ResumeFile{Name: app.ResumeFilename, Size: size, Content: rc}, nil
}
