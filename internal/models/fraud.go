package models

// RiskLevel — итоговая оценка риска по билету
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// rank задаёт порядок эскалации уровней риска
var rank = map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2, RiskCritical: 3}

// Exceeds сообщает, строже ли уровень l уровня other
func (l RiskLevel) Exceeds(other RiskLevel) bool { return rank[l] > rank[other] }

// Типы индикаторов мошенничества
const (
	IndicatorInvalidAttempts   = "multiple_invalid_attempts"
	IndicatorMultipleBoardings = "multiple_boardings"
	IndicatorMultipleAgents    = "multiple_agents"
)

// FraudIndicator — один сработавший признак мошенничества
type FraudIndicator struct {
	Type     string    `json:"type"`
	Count    int       `json:"count"`
	Severity RiskLevel `json:"severity"`
}

// FraudAssessment — сводка антифрода по билету. Совещательная: ничего
// не блокирует, используется для ручного разбора.
type FraudAssessment struct {
	TicketID              string           `json:"ticket_id"`
	TicketNumber          string           `json:"ticket_number"`
	RiskLevel             RiskLevel        `json:"risk_level"`
	Indicators            []FraudIndicator `json:"fraud_indicators"`
	RequiresInvestigation bool             `json:"requires_investigation"`
}
