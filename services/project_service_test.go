package services_test

import (
	"errors"
	"testing"

	"collabsphere/models"
	"collabsphere/services"
)

func TestCreateProjectGrantsManagerMembership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	p := asPrincipal(alice)
	team, err := env.Teams.CreateTeam(p, "Platform", "")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	project, err := env.Projects.CreateProject(p, team.ID, "Rollout", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	var m models.ProjectMembership
	err = env.DB.Where("project_id = ? AND user_id = ?", project.ID, alice.ID).First(&m).Error
	if err != nil {
		t.Fatalf("manager membership missing: %v", err)
	}
	if m.Role != models.ProjectRoleManager {
		t.Fatalf("creator role = %s, want manager", m.Role)
	}
}

func TestCreateProjectDuplicateNameInTeam(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	p := asPrincipal(alice)
	team, err := env.Teams.CreateTeam(p, "Platform", "")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if _, err := env.Projects.CreateProject(p, team.ID, "Rollout", ""); err != nil {
		t.Fatalf("create project: %v", err)
	}

	_, err = env.Projects.CreateProject(p, team.ID, "Rollout", "second")
	expectValidationError(t, err, "name")

	// Same name under a different team is fine.
	other, err := env.Teams.CreateTeam(p, "Design", "")
	if err != nil {
		t.Fatalf("create second team: %v", err)
	}
	if _, err := env.Projects.CreateProject(p, other.ID, "Rollout", ""); err != nil {
		t.Fatalf("same name in other team should succeed: %v", err)
	}
}

func TestCreateProjectRequiresTeamMembership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	mallory := env.createUser(t, "mallory")

	team, err := env.Teams.CreateTeam(asPrincipal(alice), "Platform", "")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	_, err = env.Projects.CreateProject(asPrincipal(mallory), team.ID, "Rogue", "")
	if !errors.Is(err, services.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestAddProjectMemberRequiresTeamMembership(t *testing.T) {
	f := newManageFixture(t)
	outsider := f.Outsider

	_, err := f.env.Projects.AddMember(asPrincipal(f.Manager), f.Project.ID, outsider.ID, models.ProjectRoleContributor)
	expectValidationError(t, err, "user_id")

	var count int64
	f.env.DB.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", f.Project.ID, outsider.ID).
		Count(&count)
	if count != 0 {
		t.Fatal("membership row created despite validation failure")
	}
}

func TestAddProjectMemberRoles(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	// Default role is contributor.
	m, err := f.env.Projects.AddMember(manager, f.Project.ID, f.Bystander.ID, "")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if m.Role != models.ProjectRoleContributor {
		t.Fatalf("default role = %s, want contributor", m.Role)
	}

	_, err = f.env.Projects.AddMember(manager, f.Project.ID, f.Bystander.ID, "")
	expectValidationError(t, err, "user_id")

	_, err = f.env.Projects.AddMember(manager, f.Project.ID, f.Owner.ID, "boss")
	expectValidationError(t, err, "role")
}

func TestAddProjectMemberDeniedForViewerAndContributor(t *testing.T) {
	f := newManageFixture(t)

	for _, u := range []*models.User{f.Viewer, f.Contributor, f.Bystander} {
		_, err := f.env.Projects.AddMember(asPrincipal(u), f.Project.ID, f.Bystander.ID, "")
		if !errors.Is(err, services.ErrPermissionDenied) {
			t.Fatalf("expected %s to be denied, got %v", u.Username, err)
		}
	}
}

func TestUpdateProjectTeamAdminFallback(t *testing.T) {
	f := newManageFixture(t)

	// The team admin holds no project membership but may still manage.
	project, err := f.env.Projects.UpdateProject(asPrincipal(f.Admin), f.Project.ID, "Rollout v2", "renamed")
	if err != nil {
		t.Fatalf("team admin update: %v", err)
	}
	if project.Name != "Rollout v2" {
		t.Fatalf("name = %s, want Rollout v2", project.Name)
	}

	_, err = f.env.Projects.UpdateProject(asPrincipal(f.Viewer), f.Project.ID, "Nope", "")
	if !errors.Is(err, services.ErrPermissionDenied) {
		t.Fatalf("expected viewer denied, got %v", err)
	}
}

func TestListProjectsScopedToTeamMembers(t *testing.T) {
	f := newManageFixture(t)

	projects, err := f.env.Projects.ListProjects(asPrincipal(f.Bystander), f.Team.ID, "")
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}

	_, err = f.env.Projects.ListProjects(asPrincipal(f.Outsider), f.Team.ID, "")
	if !errors.Is(err, services.ErrPermissionDenied) {
		t.Fatalf("expected outsider denied, got %v", err)
	}
}

func TestDeleteProjectRequiresManageRights(t *testing.T) {
	f := newManageFixture(t)

	if err := f.env.Projects.DeleteProject(asPrincipal(f.Contributor), f.Project.ID); !errors.Is(err, services.ErrPermissionDenied) {
		t.Fatalf("expected contributor denied, got %v", err)
	}

	if err := f.env.Projects.DeleteProject(asPrincipal(f.Manager), f.Project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	var count int64
	f.env.DB.Model(&models.Project{}).Where("id = ?", f.Project.ID).Count(&count)
	if count != 0 {
		t.Fatal("project row survived delete")
	}
}
