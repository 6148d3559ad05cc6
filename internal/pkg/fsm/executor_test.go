package fsm_test

import (
	"context"
	"errors"
	"testing"

	"shop/internal/pkg/fsm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context) (fsm.State, error) {
	return fsm.NoState, nil
}

func TestExecute_LiteralTarget(t *testing.T) {
	m := fsm.MustNewMachine("document", "status", baseWorkflow())
	doc := newDocument(draft)

	invoked := false
	err := m.Execute(context.Background(), doc, &doc.status, "Approve", nil,
		func(context.Context) (fsm.State, error) {
			invoked = true
			return fsm.NoState, nil
		})

	require.NoError(t, err)
	assert.True(t, invoked)
	assert.Equal(t, approved, doc.status.State())
}

func TestExecute_NoRuleForState(t *testing.T) {
	m := fsm.MustNewMachine("document", "status", baseWorkflow())
	doc := newDocument(published)

	invoked := false
	err := m.Execute(context.Background(), doc, &doc.status, "Approve", nil,
		func(context.Context) (fsm.State, error) {
			invoked = true
			return fsm.NoState, nil
		})

	require.Error(t, err)
	require.ErrorIs(t, err, fsm.ErrTransitionNotAllowed)
	assert.False(t, invoked, "business logic must not run without a matching rule")
	assert.Equal(t, published, doc.status.State())
}

func TestExecute_GuardBlocks(t *testing.T) {
	m := fsm.MustNewMachine("document", "status", baseWorkflow())
	doc := newDocument(approved)

	err := m.Execute(context.Background(), doc, &doc.status, "Publish", nil, noop)

	require.ErrorIs(t, err, fsm.ErrTransitionNotAllowed)
	assert.Contains(t, err.Error(), "conditions have not been met")
	assert.Equal(t, approved, doc.status.State())
}

func TestExecute_PermissionDenied(t *testing.T) {
	m := fsm.MustNewMachine("document", "status", fsm.Extension{
		Name: "base",
		Transitions: []fsm.Transition{
			{
				Method:     "Discard",
				Sources:    []fsm.State{fsm.SourceAny},
				Target:     fsm.To(archived),
				Permission: "document.discard",
			},
		},
	})
	doc := newDocument(draft)

	err := m.Execute(context.Background(), doc, &doc.status, "Discard", permitActor{}, noop)
	require.ErrorIs(t, err, fsm.ErrTransitionNotAllowed)
	assert.Equal(t, draft, doc.status.State())

	admin := permitActor{permissions: map[string]bool{"document.discard": true}}
	require.NoError(t, m.Execute(context.Background(), doc, &doc.status, "Discard", admin, noop))
	assert.Equal(t, archived, doc.status.State())
}

func TestExecute_BodyFailureLeavesStateUnchanged(t *testing.T) {
	m := fsm.MustNewMachine("document", "status", baseWorkflow())
	doc := newDocument(draft)
	boom := errors.New("storage offline")

	err := m.Execute(context.Background(), doc, &doc.status, "Approve", nil,
		func(context.Context) (fsm.State, error) {
			return fsm.NoState, boom
		})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, draft, doc.status.State())
}

func TestExecute_BodyFailureAppliesErrorFallback(t *testing.T) {
	const failed fsm.State = "publish_failed"
	m := fsm.MustNewMachine("document", "status", fsm.Extension{
		Name: "base",
		Transitions: []fsm.Transition{
			{
				Method:  "Publish",
				Sources: []fsm.State{approved},
				Target:  fsm.To(published),
				OnError: failed,
			},
		},
	})
	doc := newDocument(approved)
	boom := errors.New("render crashed")

	err := m.Execute(context.Background(), doc, &doc.status, "Publish", nil,
		func(context.Context) (fsm.State, error) {
			return fsm.NoState, boom
		})

	require.ErrorIs(t, err, boom, "original error propagates even with a fallback state")
	assert.Equal(t, failed, doc.status.State())
}

func TestExecute_ComputedTarget(t *testing.T) {
	machine := func() *fsm.Machine {
		return fsm.MustNewMachine("document", "status", fsm.Extension{
			Name: "base",
			Transitions: []fsm.Transition{
				{
					Method:  "Review",
					Sources: []fsm.State{draft},
					Target:  fsm.FromResult(approved, archived),
				},
			},
		})
	}

	t.Run("allowed result is assigned", func(t *testing.T) {
		doc := newDocument(draft)

		err := machine().Execute(context.Background(), doc, &doc.status, "Review", nil,
			func(context.Context) (fsm.State, error) {
				return archived, nil
			})

		require.NoError(t, err)
		assert.Equal(t, archived, doc.status.State())
	})

	t.Run("pre observer sees no target before the result exists", func(t *testing.T) {
		m := machine()
		var pre, post []fsm.Event
		m.SubscribePre(func(event fsm.Event) { pre = append(pre, event) })
		m.SubscribePost(func(event fsm.Event) { post = append(post, event) })
		doc := newDocument(draft)

		err := m.Execute(context.Background(), doc, &doc.status, "Review", nil,
			func(context.Context) (fsm.State, error) {
				return approved, nil
			})

		require.NoError(t, err)
		require.Len(t, pre, 1)
		assert.Equal(t, fsm.NoState, pre[0].Target)
		require.Len(t, post, 1)
		assert.Equal(t, approved, post[0].Target)
	})

	t.Run("result outside allowed set fails", func(t *testing.T) {
		doc := newDocument(draft)

		err := machine().Execute(context.Background(), doc, &doc.status, "Review", nil,
			func(context.Context) (fsm.State, error) {
				return published, nil
			})

		require.ErrorIs(t, err, fsm.ErrInvalidResultState)
		assert.Equal(t, draft, doc.status.State())
	})
}

func TestExecute_Observers(t *testing.T) {
	m := fsm.MustNewMachine("document", "status", baseWorkflow())

	var pre, post []fsm.Event
	m.SubscribePre(func(event fsm.Event) { pre = append(pre, event) })
	m.SubscribePost(func(event fsm.Event) { post = append(post, event) })

	t.Run("success", func(t *testing.T) {
		pre, post = nil, nil
		doc := newDocument(draft)

		require.NoError(t, m.Execute(context.Background(), doc, &doc.status, "Approve", nil, noop))

		require.Len(t, pre, 1)
		assert.Equal(t, draft, pre[0].Source)
		assert.Equal(t, approved, pre[0].Target)
		require.Len(t, post, 1)
		assert.Equal(t, approved, post[0].Target)
		assert.NoError(t, post[0].Err)
	})

	t.Run("failure still notifies post observers", func(t *testing.T) {
		pre, post = nil, nil
		doc := newDocument(draft)
		boom := errors.New("boom")

		err := m.Execute(context.Background(), doc, &doc.status, "Approve", nil,
			func(context.Context) (fsm.State, error) {
				return fsm.NoState, boom
			})

		require.ErrorIs(t, err, boom)
		require.Len(t, post, 1)
		assert.Equal(t, draft, post[0].Target, "no fallback declared, target stays the source")
		assert.ErrorIs(t, post[0].Err, boom)
	})

	t.Run("blocked transition notifies nobody", func(t *testing.T) {
		pre, post = nil, nil
		doc := newDocument(published)

		err := m.Execute(context.Background(), doc, &doc.status, "Approve", nil, noop)

		require.ErrorIs(t, err, fsm.ErrTransitionNotAllowed)
		assert.Empty(t, pre)
		assert.Empty(t, post)
	})
}

type moderated struct {
	status   fsm.StateField
	handling any
}

func (d *moderated) SwitchVariant(_ fsm.State, capability any) {
	d.handling = capability
}

func TestExecute_SwitchesVariant(t *testing.T) {
	m := fsm.MustNewMachine("document", "status", baseWorkflow())
	m.RegisterVariants(map[fsm.State]any{
		approved: "editable",
		archived: "frozen",
	})

	doc := &moderated{status: fsm.NewStateField(draft)}

	require.NoError(t, m.Execute(context.Background(), doc, &doc.status, "Approve", nil, noop))
	assert.Equal(t, "editable", doc.handling)

	capability, ok := m.Variant(archived)
	require.True(t, ok)
	assert.Equal(t, "frozen", capability)
}
