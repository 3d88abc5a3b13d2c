package service

import (
	"context"
	"errors"
	"time"

	"case-knowledge-be/internal/constant"
	"case-knowledge-be/internal/dto"
	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/pkg/logger"
	"case-knowledge-be/internal/repository/contract"
	"case-knowledge-be/internal/repository/specification"
	"case-knowledge-be/internal/repository/unitofwork"
	"case-knowledge-be/pkg/answer"
	"case-knowledge-be/pkg/llm"

	"github.com/google/uuid"
)

// ErrConversationBusy is returned when a send overlaps an in-flight one for
// the same session. Overlapping sends are refused, not queued.
var ErrConversationBusy = errors.New("conversation is busy, please wait for the current response")

// historyTurns bounds how many prior messages are replayed to the model.
const historyTurns = 10

const sourcePreviewChars = 200

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ChatHistoryResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	ClearMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (bool, error)
	GetChunk(ctx context.Context, chunkId uuid.UUID) (*dto.ChunkPreviewResponse, error)
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	searchService ISearchService
	router        *answer.Router
	guard         contract.ConversationGuard
	logger        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	searchService ISearchService,
	router *answer.Router,
	guard contract.ConversationGuard,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		searchService: searchService,
		router:        router,
		guard:         guard,
		logger:        log,
	}
}

func (c *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	title := req.Title
	if title == "" {
		title = "New conversation"
	}

	session := entity.ChatSession{
		Id:        uuid.New(),
		ProjectId: req.ProjectId,
		UserId:    userId,
		Title:     title,
		CreatedAt: time.Now(),
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (c *chatService) GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.ownedSession(ctx, uow, userId, sessionId)
	if err != nil || session == nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySession{SessionId: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := dto.ChatHistoryResponse{
		ChatSessionId: sessionId,
		Messages:      make([]dto.ChatMessageDTO, len(messages)),
	}
	for i, m := range messages {
		res.Messages[i] = toMessageDTO(m)
	}
	return &res, nil
}

func (c *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.ownedSession(ctx, uow, userId, req.ChatSessionId)
	if err != nil || session == nil {
		return nil, err
	}

	acquired, err := c.guard.TryAcquire(ctx, session.Id)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrConversationBusy
	}
	defer func() {
		if err := c.guard.Release(ctx, session.Id); err != nil {
			c.logger.Warn("chat", "failed to release busy flag", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}()

	effort := req.Effort
	if effort == "" {
		effort = constant.EffortStandard
	}

	history, err := c.recentHistory(ctx, uow, session.Id)
	if err != nil {
		return nil, err
	}

	userMsg := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleUser,
		Content:       req.Content,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMsg); err != nil {
		return nil, err
	}

	sources, chatSources := c.retrieveSources(ctx, session.ProjectId, req.Content)

	genReq := answer.Request{
		Question: req.Content,
		Effort:   effort,
		Sources:  sources,
		History:  history,
	}
	if req.FileContext != nil {
		genReq.FileContext = *req.FileContext
	}

	text, model, genErr := c.router.Generate(ctx, genReq)
	if genErr != nil {
		// Classified failures become a normal assistant turn so the
		// conversation stays coherent; raw provider errors never escape.
		var generationErr *answer.GenerationError
		if !errors.As(genErr, &generationErr) {
			return nil, genErr
		}
		c.logger.Error("chat", "answer generation failed", map[string]interface{}{
			"session_id": session.Id,
			"kind":       string(generationErr.Kind),
			"error":      generationErr.Error(),
		})
		text = generationErr.UserMessage()
		chatSources = nil
	}

	assistantMsg := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       text,
		Model:         &model,
		Complexity:    &effort,
		Sources:       chatSources,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMsg); err != nil {
		return nil, err
	}

	sent := toMessageDTO(&userMsg)
	reply := toMessageDTO(&assistantMsg)
	return &dto.SendMessageResponse{
		ChatSessionId: session.Id,
		Sent:          &sent,
		Reply:         &reply,
	}, nil
}

func (c *chatService) ClearMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.ownedSession(ctx, uow, userId, sessionId)
	if err != nil || session == nil {
		return false, err
	}

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return false, err
	}
	return true, nil
}

func (c *chatService) GetChunk(ctx context.Context, chunkId uuid.UUID) (*dto.ChunkPreviewResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	chunk, err := uow.DocumentChunkRepository().FindOne(ctx, specification.ByID{ID: chunkId})
	if err != nil {
		return nil, err
	}
	if chunk == nil {
		return nil, nil
	}

	return &dto.ChunkPreviewResponse{
		Id:             chunk.Id,
		CaseFileId:     chunk.CaseFileId,
		Content:        chunk.Content,
		ChunkType:      chunk.ChunkType,
		PageNumber:     chunk.PageNumber,
		SectionHeading: chunk.SectionHeading,
		TimestampStart: chunk.TimestampStart,
		SourceFileName: chunk.SourceFileName,
		SourceFileType: chunk.SourceFileType,
	}, nil
}

// ownedSession loads a session only when it belongs to the caller; a wrong
// owner looks identical to not-found.
func (c *chatService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	return uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUser{UserId: userId},
	)
}

func (c *chatService) recentHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]llm.Message, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySession{SessionId: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: historyTurns},
	)
	if err != nil {
		return nil, err
	}

	// Newest-first from the query, replayed oldest-first to the model.
	history := make([]llm.Message, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		history = append(history, llm.Message{
			Role:    messages[i].Role,
			Content: messages[i].Content,
		})
	}
	return history, nil
}

// retrieveSources runs hybrid retrieval for the question. Retrieval failure
// degrades to an answer without citations rather than failing the send.
func (c *chatService) retrieveSources(ctx context.Context, projectId uuid.UUID, question string) ([]answer.Source, []entity.ChatSource) {
	res, err := c.searchService.Hybrid(ctx, &dto.HybridSearchRequest{
		Query:     question,
		ProjectId: projectId,
	})
	if err != nil {
		c.logger.Warn("chat", "retrieval failed, answering without sources", map[string]interface{}{
			"project_id": projectId,
			"error":      err.Error(),
		})
		return nil, nil
	}

	sources := make([]answer.Source, len(res.Results))
	chatSources := make([]entity.ChatSource, len(res.Results))
	for i, r := range res.Results {
		sources[i] = answer.Source{
			Index:          i + 1,
			FileName:       r.SourceFileName,
			PageNumber:     r.PageNumber,
			SectionHeading: r.SectionHeading,
			Content:        r.Content,
		}
		chatSources[i] = entity.ChatSource{
			SourceIndex:    i + 1,
			ChunkId:        r.Id,
			FileId:         r.CaseFileId,
			FileName:       r.SourceFileName,
			FileType:       r.SourceFileType,
			PageNumber:     r.PageNumber,
			SectionHeading: r.SectionHeading,
			Preview:        preview(r.Content),
			TimestampStart: r.TimestampStart,
		}
	}
	return sources, chatSources
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= sourcePreviewChars {
		return content
	}
	return string(runes[:sourcePreviewChars]) + "…"
}

func toMessageDTO(m *entity.ChatMessage) dto.ChatMessageDTO {
	return dto.ChatMessageDTO{
		Id:         m.Id,
		Role:       m.Role,
		Content:    m.Content,
		Model:      m.Model,
		Complexity: m.Complexity,
		Sources:    m.Sources,
		CreatedAt:  m.CreatedAt,
	}
}
