package service

import (
	"context"
	"strconv"

	"github.com/ticketzen/boarding-service/internal/models"
)

// Пороги антифрод-эвристик
const (
	attemptsMedium = 3 // невалидных попыток до уровня medium
	maxAgents      = 2 // допустимое число разных агентов на билет
)

// AssessFraud агрегирует счётчик невалидных попыток и историю сканов
// в оценку риска. Возвращает максимальный сработавший уровень и список
// индикаторов; ничего не блокирует.
func (s *Service) AssessFraud(ctx context.Context, ticketID string) (models.FraudAssessment, error) {
	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return models.FraudAssessment{}, err
	}

	out := models.FraudAssessment{
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		RiskLevel:    models.RiskLow,
		Indicators:   []models.FraudIndicator{},
	}
	escalate := func(l models.RiskLevel) {
		if l.Exceeds(out.RiskLevel) {
			out.RiskLevel = l
		}
	}

	raw, found, err := s.store.Get(ctx, attemptsKey(ticket.ID))
	if err != nil {
		return models.FraudAssessment{}, err
	}
	attempts := 0
	if found {
		attempts, _ = strconv.Atoi(raw)
	}
	if attempts >= attemptsMedium {
		sev := models.RiskMedium
		if attempts >= fraudAlertThreshold {
			sev = models.RiskHigh
		}
		out.Indicators = append(out.Indicators, models.FraudIndicator{
			Type:     models.IndicatorInvalidAttempts,
			Count:    attempts,
			Severity: sev,
		})
		escalate(sev)
	}

	// билет садится не больше одного раза: второй валидный скан —
	// клонирование или replay
	boardings, err := s.scans.CountValidBoardings(ctx, ticket.ID)
	if err != nil {
		return models.FraudAssessment{}, err
	}
	if boardings > 1 {
		out.Indicators = append(out.Indicators, models.FraudIndicator{
			Type:     models.IndicatorMultipleBoardings,
			Count:    boardings,
			Severity: models.RiskCritical,
		})
		escalate(models.RiskCritical)
	}

	agents, err := s.scans.CountDistinctAgents(ctx, ticket.ID)
	if err != nil {
		return models.FraudAssessment{}, err
	}
	if agents > maxAgents {
		out.Indicators = append(out.Indicators, models.FraudIndicator{
			Type:     models.IndicatorMultipleAgents,
			Count:    agents,
			Severity: models.RiskHigh,
		})
		escalate(models.RiskHigh)
	}

	out.RequiresInvestigation = out.RiskLevel == models.RiskHigh || out.RiskLevel == models.RiskCritical
	return out, nil
}
