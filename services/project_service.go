package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"team-portal/config"
	"team-portal/models"
	"team-portal/repository"
)

const (
	PlaceholderImage = "https://via.placeholder.com/400x300?text=No+Preview"
	PDFIcon          = "/pdf-icon.png"
	DriveIcon        = "https://ssl.gstatic.com/docs/doclist/images/icon_10_pdf_list.png"

	// Members may only share Canva designs.
	memberLinkPrefix = "https://www.canva.com"
)

// ProjectService manages the project gallery.
type ProjectService struct {
	projects repository.ProjectRepository
	storage  ThumbnailStorage
	now      func() time.Time
}

// NewProjectService wires the gallery. storage may be nil, in which case
// thumbnail uploads report ErrStorageUnavailable.
func NewProjectService(projects repository.ProjectRepository, storage ThumbnailStorage) *ProjectService {
	return &ProjectService{projects: projects, storage: storage, now: time.Now}
}

type preview struct {
	imageURL    string
	previewType string
	previewURL  string
}

// classifyLink picks a thumbnail without fetching the link.
func classifyLink(link, customImage string) preview {
	switch {
	case customImage != "":
		return preview{imageURL: customImage, previewType: models.PreviewImage, previewURL: link}
	case strings.HasSuffix(strings.ToLower(link), ".pdf"):
		return preview{imageURL: PDFIcon, previewType: models.PreviewPDF, previewURL: link}
	case strings.Contains(link, "drive.google.com"):
		return preview{imageURL: DriveIcon, previewType: models.PreviewGoogle, previewURL: link}
	default:
		return preview{imageURL: PlaceholderImage, previewType: models.PreviewOther, previewURL: link}
	}
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

// Create adds a project on behalf of the caller. Members are restricted to
// Canva links and cannot choose their own thumbnail.
func (s *ProjectService) Create(ctx context.Context, caller *models.Identity, req models.ProjectRequest) (*models.Project, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.ProjectLink = strings.TrimSpace(req.ProjectLink)
	if req.Name == "" || req.ProjectLink == "" {
		return nil, fmt.Errorf("%w: name and projectLink are required", ErrValidation)
	}

	customImage := req.ImageURL
	if !caller.IsAdmin() {
		if !strings.HasPrefix(req.ProjectLink, memberLinkPrefix) {
			return nil, fmt.Errorf("%w: members may only submit Canva links", ErrForbidden)
		}
		customImage = ""
	}

	pv := classifyLink(req.ProjectLink, customImage)
	now := s.now()
	project := &models.Project{
		Name:        req.Name,
		ProjectLink: req.ProjectLink,
		ImageURL:    pv.imageURL,
		PreviewType: pv.previewType,
		PreviewURL:  pv.previewURL,
		CreatedBy:   caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	config.Log.WithField("project_id", project.ID).Info("Project created")
	return project, nil
}

func (s *ProjectService) find(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: project not found", ErrNotFound)
	}
	return project, err
}

// Update renames or relinks a project. A new link gets a fresh preview.
func (s *ProjectService) Update(ctx context.Context, id string, req models.ProjectRequest) (*models.Project, error) {
	project, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		project.Name = name
	}
	link := strings.TrimSpace(req.ProjectLink)
	if link != "" && link != project.ProjectLink {
		pv := classifyLink(link, req.ImageURL)
		project.ProjectLink = link
		project.ImageURL = pv.imageURL
		project.PreviewType = pv.previewType
		project.PreviewURL = pv.previewURL
	} else if req.ImageURL != "" {
		project.ImageURL = req.ImageURL
		project.PreviewType = models.PreviewImage
	}
	project.UpdatedAt = s.now()

	if err := s.projects.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: project not found", ErrNotFound)
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	err := s.projects.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: project not found", ErrNotFound)
	}
	if err != nil {
		return err
	}
	config.Log.WithField("project_id", id).Info("Project deleted")
	return nil
}

// SetThumbnail stores an uploaded image and makes it the project's preview.
func (s *ProjectService) SetThumbnail(ctx context.Context, id, filename, contentType string, body io.Reader) (*models.Project, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("%w: thumbnail storage is not configured", ErrStorageUnavailable)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: thumbnail must be an image", ErrValidation)
	}

	project, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("thumbnails/%s-%d%s", project.ID, s.now().Unix(), strings.ToLower(path.Ext(filename)))
	url, err := s.storage.Upload(ctx, key, contentType, body)
	if err != nil {
		config.Log.WithError(err).WithField("project_id", project.ID).Error("Thumbnail upload failed")
		return nil, err
	}

	project.ImageURL = url
	project.PreviewType = models.PreviewImage
	project.UpdatedAt = s.now()
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
