package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/services"
	"gorm.io/gorm"
)

// ErrAlreadySeeded is returned when projects already exist.
var ErrAlreadySeeded = errors.New("seed: database already contains projects")

// Result counts the rows a seeding run created.
type Result struct {
	Users      int
	Projects   int
	Milestones int
	Tasks      int
	Proposals  int
	Sections   int
	Documents  int
}

type Seeder struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewSeeder(db *gorm.DB, log zerolog.Logger) *Seeder {
	return &Seeder{db: db, log: log}
}

// run holds the services of one seeding transaction.
type run struct {
	users      *services.UserService
	projects   *services.ProjectService
	milestones *services.MilestoneService
	tasks      *services.TaskService
	proposals  *services.ProposalService
	sections   *services.ProposalSectionService
	documents  *services.DocumentService
	log        zerolog.Logger
}

func newRun(tx *gorm.DB, log zerolog.Logger) *run {
	userRepo := repository.NewUserRepository(tx)
	projectRepo := repository.NewProjectRepository(tx)
	milestoneRepo := repository.NewMilestoneRepository(tx)
	taskRepo := repository.NewTaskRepository(tx)
	proposalRepo := repository.NewProposalRepository(tx)
	sectionRepo := repository.NewProposalSectionRepository(tx)
	documentRepo := repository.NewDocumentRepository(tx)

	return &run{
		users:      services.NewUserService(userRepo),
		projects:   services.NewProjectService(projectRepo, milestoneRepo, taskRepo),
		milestones: services.NewMilestoneService(milestoneRepo, projectRepo, taskRepo),
		tasks:      services.NewTaskService(taskRepo, userRepo, milestoneRepo),
		proposals:  services.NewProposalService(proposalRepo, projectRepo, sectionRepo, documentRepo),
		sections:   services.NewProposalSectionService(sectionRepo, proposalRepo),
		documents:  services.NewDocumentService(documentRepo, proposalRepo),
		log:        log,
	}
}

// Apply writes f in one transaction, so a failing fixture leaves nothing
// behind. Users whose username already exists are reused rather than
// recreated; any existing project makes the run fail with ErrAlreadySeeded.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Result, error) {
	var res Result

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res = Result{}
		return newRun(tx, s.log).apply(ctx, f, &res)
	})
	if err != nil {
		return Result{}, err
	}

	s.log.Info().
		Int("users", res.Users).
		Int("projects", res.Projects).
		Int("milestones", res.Milestones).
		Int("tasks", res.Tasks).
		Int("proposals", res.Proposals).
		Int("sections", res.Sections).
		Int("documents", res.Documents).
		Msg("seed applied")
	return res, nil
}

func (s *run) apply(ctx context.Context, f *Fixture, res *Result) error {
	existing, err := s.projects.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return ErrAlreadySeeded
	}

	userIDs, err := s.applyUsers(ctx, f.Users, res)
	if err != nil {
		return err
	}

	for _, pf := range f.Projects {
		if err := s.applyProject(ctx, pf, userIDs, res); err != nil {
			return err
		}
	}
	return nil
}

func (s *run) applyUsers(ctx context.Context, fixtures []UserFixture, res *Result) (map[string]string, error) {
	current, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(current)+len(fixtures))
	for _, u := range current {
		ids[u.Username] = u.ID
	}

	for _, uf := range fixtures {
		if _, ok := ids[uf.Username]; ok {
			s.log.Debug().Str("username", uf.Username).Msg("user exists, skipping")
			continue
		}
		user, err := s.users.Create(ctx, services.UserInput{
			Username: patch.Of(uf.Username),
			Password: patch.Of(uf.Password),
			Name:     patch.Of(uf.Name),
			Role:     patch.Of(uf.Role),
			Email:    optional(uf.Email),
		})
		if err != nil {
			return nil, fmt.Errorf("seed user %q: %w", uf.Username, err)
		}
		ids[user.Username] = user.ID
		res.Users++
	}
	return ids, nil
}

func (s *run) applyProject(ctx context.Context, pf ProjectFixture, userIDs map[string]string, res *Result) error {
	project, err := s.projects.Create(ctx, services.ProjectInput{
		Name:        patch.Of(pf.Name),
		Description: optional(pf.Description),
		StartDate:   patch.Of(pf.StartDate),
		EndDate:     patch.Of(pf.EndDate),
		Progress:    patch.Of(pf.Progress),
	})
	if err != nil {
		return fmt.Errorf("seed project %q: %w", pf.Name, err)
	}
	res.Projects++

	for _, mf := range pf.Milestones {
		milestone, err := s.milestones.Create(ctx, services.MilestoneInput{
			ProjectID:   patch.Of(project.ID),
			Title:       patch.Of(mf.Title),
			Description: optional(mf.Description),
			StartDate:   optional(mf.StartDate),
			DueDate:     patch.Of(mf.DueDate),
			Status:      patch.Of(mf.Status),
			Progress:    patch.Of(mf.Progress),
		})
		if err != nil {
			return fmt.Errorf("seed milestone %q: %w", mf.Title, err)
		}
		res.Milestones++

		for _, tf := range mf.Tasks {
			userID, ok := userIDs[tf.User]
			if !ok {
				return fmt.Errorf("seed task %q: unknown user %q", tf.Title, tf.User)
			}
			if _, err := s.tasks.Create(ctx, services.TaskInput{
				Title:       patch.Of(tf.Title),
				Status:      patch.Of(tf.Status),
				StartDate:   patch.Of(tf.StartDate),
				DueDate:     patch.Of(tf.DueDate),
				Progress:    patch.Of(tf.Progress),
				Priority:    patch.Of(tf.Priority),
				UserID:      patch.Of(userID),
				MilestoneID: patch.Of(milestone.ID),
			}); err != nil {
				return fmt.Errorf("seed task %q: %w", tf.Title, err)
			}
			res.Tasks++
		}
	}

	for _, prf := range pf.Proposals {
		proposal, err := s.proposals.Create(ctx, services.ProposalInput{
			ProjectID: patch.Of(project.ID),
			Title:     patch.Of(prf.Title),
		})
		if err != nil {
			return fmt.Errorf("seed proposal %q: %w", prf.Title, err)
		}
		res.Proposals++

		for _, sf := range prf.Sections {
			if _, err := s.sections.Create(ctx, services.ProposalSectionInput{
				ProposalID: patch.Of(proposal.ID),
				Title:      patch.Of(sf.Title),
				Content:    patch.Of(sf.Content),
				OrderNum:   patch.Of(sf.OrderNum),
			}); err != nil {
				return fmt.Errorf("seed section %q: %w", sf.Title, err)
			}
			res.Sections++
		}

		for _, df := range prf.Documents {
			if _, err := s.documents.Create(ctx, services.DocumentInput{
				Title:       patch.Of(df.Title),
				Description: optional(df.Description),
				FileURL:     patch.Of(df.FileURL),
				FileType:    patch.Of(df.FileType),
				UploadDate:  patch.Of(df.UploadDate),
				ProposalID:  patch.Of(proposal.ID),
			}); err != nil {
				return fmt.Errorf("seed document %q: %w", df.Title, err)
			}
			res.Documents++
		}
	}
	return nil
}

func optional[T any](v *T) patch.Field[T] {
	if v == nil {
		return patch.Field[T]{}
	}
	return patch.Of(*v)
}
