package career

import "github.com/futig/career-agent/internal/entity"

func toChatTurns(dtos []entity.ChatTurnDTO) []entity.ChatTurn {
	turns := make([]entity.ChatTurn, 0, len(dtos))
	for _, d := range dtos {
		turns = append(turns, entity.ChatTurn{
			Role:    entity.ChatRole(d.Role),
			Content: d.Content,
		})
	}
	return turns
}

func toChatTurnDTO(t entity.ChatTurn) entity.ChatTurnDTO {
	return entity.ChatTurnDTO{
		Role:    string(t.Role),
		Content: t.Content,
	}
}

func toTroubleshootResponse(s *entity.ChatSession, reply entity.ChatTurn) *entity.TroubleshootResponse {
	history := make([]entity.ChatTurnDTO, 0, len(s.Turns))
	for _, t := range s.Turns {
		history = append(history, toChatTurnDTO(t))
	}

	return &entity.TroubleshootResponse{
		SessionID: s.ID,
		State:     string(s.State()),
		Reply:     toChatTurnDTO(reply),
		History:   history,
	}
}
