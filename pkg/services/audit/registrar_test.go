package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

// MockTaskCreator is a mock implementation of ledger.TaskCreator for testing
type MockTaskCreator struct {
	mock.Mock
}

func (m *MockTaskCreator) CreateFollowUp(ctx context.Context, task ledger.FollowUp) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func entityIssue(severity domain.Severity) domain.Issue {
	issue := domain.NewIssue("unbalanced_journal", severity, "Journal entry is unbalanced")
	issue.EntityType = "account.move"
	issue.EntityID = 42
	issue.EntityName = "MOVE/042"
	return issue
}

func TestRegistrarRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("actionable issues dispatch a follow-up task", func(t *testing.T) {
		tasks := new(MockTaskCreator)
		tasks.On("CreateFollowUp", ctx, mock.MatchedBy(func(task ledger.FollowUp) bool {
			return task.EntityType == "account.move" &&
				task.EntityID == 42 &&
				task.Summary == "AI Audit: unbalanced_journal"
		})).Return(nil)

		registrar := NewRegistrar(tasks)
		registrar.Register(ctx, entityIssue(domain.SeverityError))
		registrar.Register(ctx, entityIssue(domain.SeverityWarning))

		assert.Len(t, registrar.Issues(), 2)
		tasks.AssertNumberOfCalls(t, "CreateFollowUp", 2)
	})

	t.Run("info issues never dispatch", func(t *testing.T) {
		tasks := new(MockTaskCreator)

		registrar := NewRegistrar(tasks)
		registrar.Register(ctx, entityIssue(domain.SeverityInfo))

		assert.Len(t, registrar.Issues(), 1)
		tasks.AssertNotCalled(t, "CreateFollowUp", mock.Anything, mock.Anything)
	})

	t.Run("issues without an entity reference never dispatch", func(t *testing.T) {
		tasks := new(MockTaskCreator)

		registrar := NewRegistrar(tasks)
		issue := domain.NewIssue("vat_configuration", domain.SeverityWarning, "VAT configuration incomplete")
		registrar.Register(ctx, issue)

		assert.Len(t, registrar.Issues(), 1)
		tasks.AssertNotCalled(t, "CreateFollowUp", mock.Anything, mock.Anything)
	})

	t.Run("dispatch failure keeps the issue", func(t *testing.T) {
		tasks := new(MockTaskCreator)
		tasks.On("CreateFollowUp", ctx, mock.AnythingOfType("ledger.FollowUp")).
			Return(errors.New("odoo unreachable"))

		registrar := NewRegistrar(tasks)
		registrar.Register(ctx, entityIssue(domain.SeverityError))

		assert.Len(t, registrar.Issues(), 1)
		tasks.AssertExpectations(t)
	})

	t.Run("nil task creator collects without dispatching", func(t *testing.T) {
		registrar := NewRegistrar(nil)
		registrar.Register(ctx, entityIssue(domain.SeverityError))

		assert.Len(t, registrar.Issues(), 1)
	})

	t.Run("invalid severity panics", func(t *testing.T) {
		registrar := NewRegistrar(nil)
		issue := entityIssue(domain.SeverityError)
		issue.Severity = domain.Severity(99)

		assert.Panics(t, func() {
			registrar.Register(ctx, issue)
		})
	})

	t.Run("reset clears the collected list", func(t *testing.T) {
		registrar := NewRegistrar(nil)
		registrar.Register(ctx, entityIssue(domain.SeverityError))
		registrar.Reset()

		assert.Empty(t, registrar.Issues())
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		registrar := NewRegistrar(nil)

		first := domain.NewIssue("zero_amount_entry", domain.SeverityWarning, "first")
		second := domain.NewIssue("negative_stock", domain.SeverityError, "second")
		registrar.Register(ctx, first)
		registrar.Register(ctx, second)

		issues := registrar.Issues()
		assert.Equal(t, "first", issues[0].Message)
		assert.Equal(t, "second", issues[1].Message)
	})
}
