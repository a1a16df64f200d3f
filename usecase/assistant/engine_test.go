package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/internal/infrastructure/llm"
	"github.com/lifedesk/backend/repository"
)

func taskFilterFor(userID string) repository.TaskFilter {
	return repository.TaskFilter{UserID: userID, Limit: 100}
}

func newTestEngine(t *testing.T, completer ChatCompleter) (*UseCase, *Executor, *memConversations, *memJournal) {
	t.Helper()
	executor := newTestExecutor()
	conversations := newMemConversations()
	journal := &memJournal{}
	users := newMemUsers(&domain.User{ID: testUser, Status: "active", AssistantKey: "sk-test"})
	uc := New(users, conversations, completer, executor, journal, 10, nil)
	return uc, executor, conversations, journal
}

func TestHandleMessageRejectsEmptyMessage(t *testing.T) {
	uc, _, _, _ := newTestEngine(t, &scriptedCompleter{})
	_, err := uc.HandleMessage(context.Background(), testUser, "   ", nil)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestHandleMessageRequiresAPIKey(t *testing.T) {
	executor := newTestExecutor()
	users := newMemUsers(&domain.User{ID: "keyless", Status: "active"})
	uc := New(users, newMemConversations(), &scriptedCompleter{}, executor, &memJournal{}, 10, nil)

	_, err := uc.HandleMessage(context.Background(), "keyless", "hello", nil)
	require.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestHandleMessageUnknownUser(t *testing.T) {
	uc, _, _, _ := newTestEngine(t, &scriptedCompleter{})
	_, err := uc.HandleMessage(context.Background(), "ghost", "hello", nil)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestHandleMessageConversationBusy(t *testing.T) {
	uc, _, conversations, _ := newTestEngine(t, &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{textReply("hi")},
	})

	acquired, err := conversations.AcquireLock(context.Background(), testUser)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = uc.HandleMessage(context.Background(), testUser, "hello", nil)
	require.ErrorIs(t, err, domain.ErrConversationBusy)
}

func TestHandleMessageReleasesLock(t *testing.T) {
	uc, _, conversations, _ := newTestEngine(t, &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{textReply("hi")},
	})

	_, err := uc.HandleMessage(context.Background(), testUser, "hello", nil)
	require.NoError(t, err)

	acquired, err := conversations.AcquireLock(context.Background(), testUser)
	require.NoError(t, err)
	assert.True(t, acquired, "lock must be released after the turn")
}

func TestHandleMessagePlainReply(t *testing.T) {
	completer := &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{textReply("Hello there!")},
	}
	uc, _, _, journal := newTestEngine(t, completer)

	reply, err := uc.HandleMessage(context.Background(), testUser, "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", reply.Response)
	assert.Empty(t, reply.Actions)

	require.Len(t, journal.records, 1)
	assert.Equal(t, "hi", journal.records[0].Message)
}

// One tool call, then a confirmation: the canonical create flow.
func TestHandleMessageSingleToolCall(t *testing.T) {
	completer := &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{
			toolCallReply(call("call-1", ToolManageTasks, `{"action":"create","title":"Buy milk"}`)),
			textReply("Created the task."),
		},
	}
	uc, executor, _, journal := newTestEngine(t, completer)

	reply, err := uc.HandleMessage(context.Background(), testUser, "add a task to buy milk", nil)
	require.NoError(t, err)

	assert.Equal(t, "Created the task.", reply.Response)
	require.Len(t, reply.Actions, 1)
	assert.Equal(t, ToolManageTasks, reply.Actions[0].Tool)
	assert.True(t, reply.Actions[0].Result.Success)

	tasks, err := executor.repos.Tasks.List(context.Background(), taskFilterFor(testUser))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)

	require.Len(t, journal.records, 1)
	assert.Len(t, journal.records[0].Actions, 1)
}

// Tool results must be fed back as role=tool messages correlated by id.
func TestHandleMessageToolResultCorrelation(t *testing.T) {
	completer := &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{
			toolCallReply(call("call-42", ToolGetOverview, `{}`)),
			textReply("Here is your day."),
		},
	}
	uc, _, _, _ := newTestEngine(t, completer)

	_, err := uc.HandleMessage(context.Background(), testUser, "what's up today", nil)
	require.NoError(t, err)

	require.Len(t, completer.seen, 2)
	second := completer.seen[1]

	last := second[len(second)-1]
	assert.Equal(t, domain.RoleTool, last.Role)
	assert.Equal(t, "call-42", last.ToolCallID)

	var result domain.ToolResult
	require.NoError(t, json.Unmarshal([]byte(last.Content), &result))

	prev := second[len(second)-2]
	assert.Equal(t, domain.RoleAssistant, prev.Role)
	require.Len(t, prev.ToolCalls, 1)
	assert.Equal(t, "call-42", prev.ToolCalls[0].ID)
}

// Resolve-then-act: a name is resolved to an id before the dependent call.
func TestHandleMessageResolveThenCreate(t *testing.T) {
	executor := newTestExecutor()
	seed := executor.manageProjects(context.Background(), testUser, map[string]interface{}{
		"action": "create",
		"title":  "Website Redesign",
	})
	require.True(t, seed.Success)
	projectID := seed.Data.(*domain.Project).ID

	completer := &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{
			toolCallReply(call("c1", ToolSearchProject, `{"query":"website"}`)),
			func(messages []llm.Message) *llm.Message {
				// The model reads the resolved id from the tool result and
				// uses it in the follow-up call.
				last := messages[len(messages)-1]
				var result domain.ToolResult
				require.NoError(t, json.Unmarshal([]byte(last.Content), &result))
				require.True(t, result.Success)
				args := fmt.Sprintf(`{"action":"create","title":"Fix header","project_id":"%s"}`, projectID)
				return &llm.Message{
					Role:      domain.RoleAssistant,
					ToolCalls: []llm.ToolCall{call("c2", ToolManageTasks, args)},
				}
			},
			textReply("Added 'Fix header' to Website Redesign."),
		},
	}

	users := newMemUsers(&domain.User{ID: testUser, Status: "active", AssistantKey: "sk-test"})
	uc := New(users, newMemConversations(), completer, executor, &memJournal{}, 10, nil)

	reply, err := uc.HandleMessage(context.Background(), testUser, "add 'fix header' to the website project", nil)
	require.NoError(t, err)

	require.Len(t, reply.Actions, 2)
	assert.Equal(t, ToolSearchProject, reply.Actions[0].Tool)
	assert.Equal(t, ToolManageTasks, reply.Actions[1].Tool)
	assert.True(t, reply.Actions[1].Result.Success)

	tasks, err := executor.repos.Tasks.List(context.Background(), taskFilterFor(testUser))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.NotNil(t, tasks[0].ProjectID)
	assert.Equal(t, projectID, *tasks[0].ProjectID)
}

// Ambiguous resolution: the model asks instead of mutating anything.
func TestHandleMessageAmbiguousResolution(t *testing.T) {
	executor := newTestExecutor()
	for _, title := range []string{"Mobile App", "Mobile Site"} {
		seed := executor.manageProjects(context.Background(), testUser, map[string]interface{}{
			"action": "create",
			"title":  title,
		})
		require.True(t, seed.Success)
	}

	completer := &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{
			toolCallReply(call("c1", ToolSearchProject, `{"query":"mobile"}`)),
			textReply("I found two projects named Mobile App and Mobile Site. Which one do you mean?"),
		},
	}

	users := newMemUsers(&domain.User{ID: testUser, Status: "active", AssistantKey: "sk-test"})
	uc := New(users, newMemConversations(), completer, executor, &memJournal{}, 10, nil)

	reply, err := uc.HandleMessage(context.Background(), testUser, "add a task to the mobile project", nil)
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "Which one")

	tasks, err := executor.repos.Tasks.List(context.Background(), taskFilterFor(testUser))
	require.NoError(t, err)
	assert.Empty(t, tasks, "ambiguity must not trigger a mutation")
}

// Multi-step creation completes within one turn: course plus lessons.
func TestHandleMessageCourseWithLessons(t *testing.T) {
	var courseID string
	completer := &scriptedCompleter{}
	completer.steps = []func([]llm.Message) *llm.Message{
		toolCallReply(call("c1", ToolManageCourses, `{"action":"create","title":"Spanish A1"}`)),
		func(messages []llm.Message) *llm.Message {
			last := messages[len(messages)-1]
			var result domain.ToolResult
			require.NoError(t, json.Unmarshal([]byte(last.Content), &result))
			data := result.Data.(map[string]interface{})
			courseID = data["id"].(string)
			return &llm.Message{
				Role: domain.RoleAssistant,
				ToolCalls: []llm.ToolCall{
					call("c2", ToolManageLessons, fmt.Sprintf(`{"action":"create","course_id":"%s","title":"Greetings"}`, courseID)),
					call("c3", ToolManageLessons, fmt.Sprintf(`{"action":"create","course_id":"%s","title":"Numbers"}`, courseID)),
				},
			}
		},
		textReply("Created the course with two lessons."),
	}

	uc, executor, _, _ := newTestEngine(t, completer)

	reply, err := uc.HandleMessage(context.Background(), testUser, "create a spanish course with two lessons", nil)
	require.NoError(t, err)
	require.Len(t, reply.Actions, 3)

	lessons, err := executor.repos.Lessons.ListByCourse(context.Background(), testUser, courseID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, 1, lessons[0].SortOrder)
	assert.Equal(t, 2, lessons[1].SortOrder)
}

// A failed tool call stays inside the turn as a value; the model recovers.
func TestHandleMessageToolFailureIsRecoverable(t *testing.T) {
	completer := &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{
			toolCallReply(call("c1", ToolManageTasks, `{"action":"create"}`)),
			toolCallReply(call("c2", ToolManageTasks, `{"action":"create","title":"Recovered"}`)),
			textReply("Done after fixing the input."),
		},
	}
	uc, executor, _, _ := newTestEngine(t, completer)

	reply, err := uc.HandleMessage(context.Background(), testUser, "add a task", nil)
	require.NoError(t, err)
	require.Len(t, reply.Actions, 2)
	assert.False(t, reply.Actions[0].Result.Success)
	assert.True(t, reply.Actions[1].Result.Success)

	tasks, err := executor.repos.Tasks.List(context.Background(), taskFilterFor(testUser))
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

// When the iteration ceiling cuts the loop off, the reply is synthesized
// from the executed actions.
func TestHandleMessageIterationCeiling(t *testing.T) {
	step := 0
	endless := &scriptedCompleter{}
	endless.steps = make([]func([]llm.Message) *llm.Message, 20)
	for i := range endless.steps {
		endless.steps[i] = func([]llm.Message) *llm.Message {
			step++
			return &llm.Message{
				Role: domain.RoleAssistant,
				ToolCalls: []llm.ToolCall{
					call(fmt.Sprintf("c%d", step), ToolManageNotes, fmt.Sprintf(`{"action":"create","title":"Note %d"}`, step)),
				},
			}
		}
	}

	uc, _, _, _ := newTestEngine(t, endless)

	reply, err := uc.HandleMessage(context.Background(), testUser, "go wild", nil)
	require.NoError(t, err)

	assert.Equal(t, 10, endless.calls, "the loop must stop at the ceiling")
	assert.Len(t, reply.Actions, 10)
	assert.Contains(t, reply.Response, "Here is what I did:")
	assert.Contains(t, reply.Response, "✅")
}

func TestHandleMessageSynthesizedReplyMarksFailures(t *testing.T) {
	reply := assembleReply("", []domain.ActionEntry{
		{Tool: ToolManageTasks, Result: domain.ToolResult{Success: true, Message: "Task 'A' created."}},
		{Tool: ToolManageTasks, Result: domain.ToolResult{Success: false, Message: "task_id is required to delete a task."}},
	})
	lines := strings.Split(reply.Response, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "✅"))
	assert.True(t, strings.HasPrefix(lines[2], "❌"))
}

// Transport-level inference errors abort the whole turn.
func TestHandleMessageUpstreamErrorAborts(t *testing.T) {
	completer := &scriptedCompleter{
		err: domain.NewError(domain.ErrCodeRateLimited, "inference endpoint rate limited"),
	}
	uc, _, conversations, journal := newTestEngine(t, completer)

	_, err := uc.HandleMessage(context.Background(), testUser, "hello", nil)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeRateLimited))

	assert.Empty(t, journal.records, "aborted turns are not journaled")

	acquired, lockErr := conversations.AcquireLock(context.Background(), testUser)
	require.NoError(t, lockErr)
	assert.True(t, acquired, "lock must be released on abort")
}

// Client history rides along; non-conversational roles are dropped.
func TestHandleMessageCarriesHistory(t *testing.T) {
	completer := &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{textReply("ok")},
	}
	uc, _, _, _ := newTestEngine(t, completer)

	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "earlier question"},
		{Role: domain.RoleAssistant, Content: "earlier answer"},
		{Role: "system", Content: "should be dropped"},
	}

	_, err := uc.HandleMessage(context.Background(), testUser, "follow-up", history)
	require.NoError(t, err)

	require.Len(t, completer.seen, 1)
	sent := completer.seen[0]
	require.Len(t, sent, 4)
	assert.Equal(t, domain.RoleSystem, sent[0].Role)
	assert.Equal(t, "earlier question", sent[1].Content)
	assert.Equal(t, "earlier answer", sent[2].Content)
	assert.Equal(t, "follow-up", sent[3].Content)
}

func TestActivityReturnsNewestFirst(t *testing.T) {
	completer := &scriptedCompleter{
		steps: []func([]llm.Message) *llm.Message{
			textReply("one"), textReply("two"), textReply("three"),
		},
	}
	uc, _, _, _ := newTestEngine(t, completer)

	for _, msg := range []string{"first", "second", "third"} {
		_, err := uc.HandleMessage(context.Background(), testUser, msg, nil)
		require.NoError(t, err)
	}

	records, err := uc.Activity(testUser, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "third", records[0].Message)
	assert.Equal(t, "second", records[1].Message)
}
