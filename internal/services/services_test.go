package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/progress-tracker-api/internal/auth"
	"github.com/yukikurage/progress-tracker-api/internal/database"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/validation"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	ctx        context.Context
	users      *UserService
	auth       *AuthService
	projects   *ProjectService
	milestones *MilestoneService
	tasks      *TaskService
	proposals  *ProposalService
	sections   *ProposalSectionService
	documents  *DocumentService
	progress   *ProgressService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(":memory:")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	require.NoError(t, database.Migrate(db, zerolog.Nop()))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	sectionRepo := repository.NewProposalSectionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	return serviceTestEnv{
		ctx:        context.Background(),
		users:      NewUserService(userRepo),
		auth:       NewAuthService(userRepo, auth.NewTokenManager("test-secret")),
		projects:   NewProjectService(projectRepo, milestoneRepo, taskRepo),
		milestones: NewMilestoneService(milestoneRepo, projectRepo, taskRepo),
		tasks:      NewTaskService(taskRepo, userRepo, milestoneRepo),
		proposals:  NewProposalService(proposalRepo, projectRepo, sectionRepo, documentRepo),
		sections:   NewProposalSectionService(sectionRepo, proposalRepo),
		documents:  NewDocumentService(documentRepo, proposalRepo),
		progress:   NewProgressService(projectRepo, milestoneRepo, taskRepo),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.users.Create(env.ctx, UserInput{
		Username: patch.Of(username),
		Password: patch.Of("password123"),
		Name:     patch.Of("User " + username),
		Role:     patch.Of(models.RoleUser),
	})
	require.NoError(t, err)
	return user
}

func (env serviceTestEnv) createProject(t *testing.T, name, start, end string) *models.Project {
	t.Helper()
	project, err := env.projects.Create(env.ctx, ProjectInput{
		Name:      patch.Of(name),
		StartDate: patch.Of(models.MustDate(start)),
		EndDate:   patch.Of(models.MustDate(end)),
	})
	require.NoError(t, err)
	return project
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestCascadeScenario_DeletingProjectRemovesMilestoneAndTask(t *testing.T) {
	env := setupServiceTestEnv(t)
	u1 := env.createUser(t, "u1")
	p1 := env.createProject(t, "Thesis", "2025-01-01", "2025-06-01")

	m1, err := env.milestones.Create(env.ctx, MilestoneInput{
		ProjectID: patch.Of(p1.ID),
		Title:     patch.Of("Design"),
		DueDate:   patch.Of(models.MustDate("2025-02-01")),
		Status:    patch.Of(models.StatusPending),
	})
	require.NoError(t, err)

	t1, err := env.tasks.Create(env.ctx, TaskInput{
		Title:       patch.Of("Draft doc"),
		Status:      patch.Of(models.StatusPending),
		StartDate:   patch.Of(models.MustDate("2025-01-05")),
		DueDate:     patch.Of(models.MustDate("2025-01-20")),
		Priority:    patch.Of(models.PriorityHigh),
		UserID:      patch.Of(u1.ID),
		MilestoneID: patch.Of(m1.ID),
	})
	require.NoError(t, err)

	require.NoError(t, env.projects.Delete(env.ctx, p1.ID))

	_, err = env.milestones.Get(env.ctx, m1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.tasks.Get(env.ctx, t1.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.users.Get(env.ctx, u1.ID)
	assert.NoError(t, err)
}

func TestMilestoneUpdate_ChangesOnlySuppliedFields(t *testing.T) {
	env := setupServiceTestEnv(t)
	p := env.createProject(t, "Thesis", "2025-01-01", "2025-06-01")

	m, err := env.milestones.Create(env.ctx, MilestoneInput{
		ProjectID:   patch.Of(p.ID),
		Title:       patch.Of("Design"),
		Description: patch.Of("system design"),
		DueDate:     patch.Of(models.MustDate("2025-02-01")),
		Status:      patch.Of(models.StatusPending),
	})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	input := decode[MilestoneInput](t, `{"status":"completed","progress":100}`)
	updated, err := env.milestones.Update(env.ctx, m.ID, input)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, "Design", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "system design", *updated.Description)
	assert.Equal(t, "2025-02-01", updated.DueDate.String())
	assert.Equal(t, p.ID, updated.ProjectID)
	assert.True(t, updated.UpdatedAt.After(m.UpdatedAt))
}

func TestUpdate_PreservesZeroAndEmptyAndClearsNull(t *testing.T) {
	env := setupServiceTestEnv(t)
	p := env.createProject(t, "Thesis", "2025-01-01", "2025-06-01")

	updated, err := env.projects.Update(env.ctx, p.ID, decode[ProjectInput](t, `{"description":"","progress":0}`))
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "", *updated.Description)
	assert.Equal(t, 0, updated.Progress)

	updated, err = env.projects.Update(env.ctx, p.ID, decode[ProjectInput](t, `{"description":null}`))
	require.NoError(t, err)
	assert.Nil(t, updated.Description)

	_, err = env.projects.Update(env.ctx, p.ID, decode[ProjectInput](t, `{"name":null}`))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_OmittedOptionalFieldsReadBackNull(t *testing.T) {
	env := setupServiceTestEnv(t)
	p := env.createProject(t, "Thesis", "2025-01-01", "2025-06-01")

	got, err := env.projects.Get(env.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thesis", got.Name)
	assert.Nil(t, got.Description)
	assert.Equal(t, "2025-01-01", got.StartDate.String())
	assert.Equal(t, "2025-06-01", got.EndDate.String())
	assert.Equal(t, 0, got.Progress)
}

func TestCreate_ReportsEveryMissingField(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.tasks.Create(env.ctx, TaskInput{Title: patch.Of("only a title")})
	require.Error(t, err)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	fields := []string{}
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"status", "start_date", "due_date", "priority", "user_id"}, fields)
}

func TestProgressOutOfRangeIsRejected(t *testing.T) {
	env := setupServiceTestEnv(t)
	p := env.createProject(t, "Thesis", "2025-01-01", "2025-06-01")

	_, err := env.projects.Update(env.ctx, p.ID, ProjectInput{Progress: patch.Of(101)})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.projects.Update(env.ctx, p.ID, ProjectInput{Progress: patch.Of(-1)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInvalidEnumIsRejected(t *testing.T) {
	env := setupServiceTestEnv(t)
	p := env.createProject(t, "Thesis", "2025-01-01", "2025-06-01")

	_, err := env.milestones.Create(env.ctx, MilestoneInput{
		ProjectID: patch.Of(p.ID),
		Title:     patch.Of("Design"),
		DueDate:   patch.Of(models.MustDate("2025-02-01")),
		Status:    patch.Of(models.Status("done")),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMissingParentIsInvalidReference(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.milestones.Create(env.ctx, MilestoneInput{
		ProjectID: patch.Of("no-such-project"),
		Title:     patch.Of("Design"),
		DueDate:   patch.Of(models.MustDate("2025-02-01")),
		Status:    patch.Of(models.StatusPending),
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.ErrorIs(t, err, ErrNotFound)

	var refErr *ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "project_id", refErr.Field)

	user := env.createUser(t, "u1")
	_, err = env.tasks.Create(env.ctx, TaskInput{
		Title:       patch.Of("Draft"),
		Status:      patch.Of(models.StatusPending),
		StartDate:   patch.Of(models.MustDate("2025-01-05")),
		DueDate:     patch.Of(models.MustDate("2025-01-20")),
		Priority:    patch.Of(models.PriorityLow),
		UserID:      patch.Of(user.ID),
		MilestoneID: patch.Of("no-such-milestone"),
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestTaskWithoutMilestone(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.createUser(t, "u1")

	task, err := env.tasks.Create(env.ctx, TaskInput{
		Title:       patch.Of("Loose"),
		Status:      patch.Of(models.StatusPending),
		StartDate:   patch.Of(models.MustDate("2025-01-05")),
		DueDate:     patch.Of(models.MustDate("2025-01-20")),
		Priority:    patch.Of(models.PriorityLow),
		UserID:      patch.Of(user.ID),
		MilestoneID: patch.Of(""),
	})
	require.NoError(t, err)
	assert.Nil(t, task.MilestoneID)
}

func TestUserService_Conflicts(t *testing.T) {
	env := setupServiceTestEnv(t)
	first, err := env.users.Create(env.ctx, UserInput{
		Username: patch.Of("alice"),
		Password: patch.Of("password123"),
		Name:     patch.Of("Alice"),
		Role:     patch.Of(models.RoleUser),
		Email:    patch.Of("alice@example.com"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, "password123", first.PasswordHash)

	_, err = env.users.Create(env.ctx, UserInput{
		Username: patch.Of("alice"),
		Password: patch.Of("password123"),
		Name:     patch.Of("Other"),
		Role:     patch.Of(models.RoleUser),
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.ErrorIs(t, err, ErrConflict)

	second := env.createUser(t, "bob")
	_, err = env.users.Update(env.ctx, second.ID, UserInput{Email: patch.Of("alice@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = env.users.Update(env.ctx, first.ID, UserInput{Username: patch.Of("alice"), Name: patch.Of("Alice A.")})
	assert.NoError(t, err)
}

func TestUserService_ShortPassword(t *testing.T) {
	env := setupServiceTestEnv(t)
	_, err := env.users.Create(env.ctx, UserInput{
		Username: patch.Of("alice"),
		Password: patch.Of("12345"),
		Name:     patch.Of("Alice"),
		Role:     patch.Of(models.RoleUser),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_DeleteRefusedWhileTasksRemain(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.createUser(t, "u1")
	task, err := env.tasks.Create(env.ctx, TaskInput{
		Title:     patch.Of("Draft"),
		Status:    patch.Of(models.StatusPending),
		StartDate: patch.Of(models.MustDate("2025-01-05")),
		DueDate:   patch.Of(models.MustDate("2025-01-20")),
		Priority:  patch.Of(models.PriorityLow),
		UserID:    patch.Of(user.ID),
	})
	require.NoError(t, err)

	err = env.users.Delete(env.ctx, user.ID)
	assert.ErrorIs(t, err, ErrHasDependents)

	require.NoError(t, env.tasks.Delete(env.ctx, task.ID))
	require.NoError(t, env.users.Delete(env.ctx, user.ID))

	_, err = env.users.Get(env.ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)

	assert.ErrorIs(t, env.projects.Delete(env.ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, env.documents.Delete(env.ctx, "missing"), ErrNotFound)

	_, err := env.tasks.Update(env.ctx, "missing", TaskInput{Title: patch.Of("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSectionList_MissingProposalIsNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.sections.List(env.ctx, repository.SectionFilter{ProposalID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProposalDetail(t *testing.T) {
	env := setupServiceTestEnv(t)
	p := env.createProject(t, "Thesis", "2025-01-01", "2025-06-01")

	proposal, err := env.proposals.Create(env.ctx, ProposalInput{ProjectID: patch.Of(p.ID), Title: patch.Of("Proposal")})
	require.NoError(t, err)

	for _, n := range []int{2, 1} {
		_, err := env.sections.Create(env.ctx, ProposalSectionInput{
			ProposalID: patch.Of(proposal.ID),
			Title:      patch.Of("Section"),
			Content:    patch.Of(""),
			OrderNum:   patch.Of(n),
		})
		require.NoError(t, err)
	}
	_, err = env.documents.Create(env.ctx, DocumentInput{
		Title:      patch.Of("Draft"),
		FileURL:    patch.Of("/docs/draft.pdf"),
		FileType:   patch.Of("pdf"),
		UploadDate: patch.Of(models.MustDate("2025-01-10")),
		ProposalID: patch.Of(proposal.ID),
	})
	require.NoError(t, err)

	detail, err := env.proposals.GetDetail(env.ctx, proposal.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sections, 2)
	assert.Equal(t, 1, detail.Sections[0].OrderNum)
	assert.Equal(t, "", detail.Sections[0].Content)
	require.Len(t, detail.Documents, 1)
	require.NotNil(t, detail.Documents[0].ProposalTitle)
	assert.Equal(t, "Proposal", *detail.Documents[0].ProposalTitle)

	require.NoError(t, env.proposals.Delete(env.ctx, proposal.ID))
	docs, err := env.documents.List(env.ctx, repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestAuthService_Login(t *testing.T) {
	env := setupServiceTestEnv(t)
	env.createUser(t, "alice")

	result, err := env.auth.Login(env.ctx, "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)

	_, err = env.auth.Login(env.ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(env.ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_EnsureDefaultAdminOnce(t *testing.T) {
	env := setupServiceTestEnv(t)

	admin, created, err := env.auth.EnsureDefaultAdmin(env.ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, created, err = env.auth.EnsureDefaultAdmin(env.ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = env.auth.Login(env.ctx, "admin", "admin123")
	assert.NoError(t, err)
}
