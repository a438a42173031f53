// Package seed loads demo data from a YAML fixture through the services, so
// the same validation and password hashing apply as for API writes.
package seed

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoFixture []byte

type Fixture struct {
	Users    []UserFixture    `yaml:"users" validate:"dive"`
	Projects []ProjectFixture `yaml:"projects" validate:"dive"`
}

type UserFixture struct {
	Username string      `yaml:"username" validate:"required"`
	Password string      `yaml:"password" validate:"required,min=6"`
	Name     string      `yaml:"name" validate:"required"`
	Role     models.Role `yaml:"role" validate:"oneof=admin user"`
	Email    *string     `yaml:"email"`
}

type ProjectFixture struct {
	Name        string             `yaml:"name" validate:"required"`
	Description *string            `yaml:"description"`
	StartDate   models.Date        `yaml:"start_date" validate:"required"`
	EndDate     models.Date        `yaml:"end_date" validate:"required"`
	Progress    int                `yaml:"progress" validate:"min=0,max=100"`
	Milestones  []MilestoneFixture `yaml:"milestones" validate:"dive"`
	Proposals   []ProposalFixture  `yaml:"proposals" validate:"dive"`
}

type MilestoneFixture struct {
	Title       string        `yaml:"title" validate:"required"`
	Description *string       `yaml:"description"`
	StartDate   *models.Date  `yaml:"start_date"`
	DueDate     models.Date   `yaml:"due_date" validate:"required"`
	Status      models.Status `yaml:"status" validate:"oneof=pending in_progress completed delayed"`
	Progress    int           `yaml:"progress" validate:"min=0,max=100"`
	Tasks       []TaskFixture `yaml:"tasks" validate:"dive"`
}

// TaskFixture names its assignee by username.
type TaskFixture struct {
	Title     string          `yaml:"title" validate:"required"`
	Status    models.Status   `yaml:"status" validate:"oneof=pending in_progress completed delayed"`
	Progress  int             `yaml:"progress" validate:"min=0,max=100"`
	Priority  models.Priority `yaml:"priority" validate:"oneof=low medium high"`
	User      string          `yaml:"user" validate:"required"`
	StartDate models.Date     `yaml:"start_date" validate:"required"`
	DueDate   models.Date     `yaml:"due_date" validate:"required"`
}

type ProposalFixture struct {
	Title     string            `yaml:"title" validate:"required"`
	Sections  []SectionFixture  `yaml:"sections" validate:"dive"`
	Documents []DocumentFixture `yaml:"documents" validate:"dive"`
}

type SectionFixture struct {
	Title    string `yaml:"title" validate:"required"`
	Content  string `yaml:"content"`
	OrderNum int    `yaml:"order_num"`
}

type DocumentFixture struct {
	Title       string      `yaml:"title" validate:"required"`
	Description *string     `yaml:"description"`
	FileURL     string      `yaml:"file_url" validate:"required"`
	FileType    string      `yaml:"file_type" validate:"required"`
	UploadDate  models.Date `yaml:"upload_date" validate:"required"`
}

// Parse decodes a fixture, rejecting unknown keys.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("seed: failed to parse fixture: %w", err)
	}
	return check(&f)
}

// Demo returns the built-in demo fixture.
func Demo() (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(demoFixture, &f); err != nil {
		return nil, fmt.Errorf("seed: failed to parse demo fixture: %w", err)
	}
	return check(&f)
}

// check validates the fixture shape before anything is written.
func check(f *Fixture) (*Fixture, error) {
	if err := validation.Struct(f); err != nil {
		return nil, fmt.Errorf("seed: invalid fixture: %w", err)
	}
	return f, nil
}

// LoadFile reads the fixture at path, or the demo fixture when path is empty.
func LoadFile(path string) (*Fixture, error) {
	if path == "" {
		return Demo()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	defer file.Close()
	return Parse(file)
}
