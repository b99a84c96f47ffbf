package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/projection"
	"fintrack/internal/services"
)

// maxPromptTransactions caps how many recent transactions are embedded in
// the prompt to keep it small.
const maxPromptTransactions = 20

const promptTemplate = `你是一个专业的个人理财顾问。请根据以下从用户的一个记账软件拉取的当月的JSON格式的个人财务数据，提供两部分内容：
1.  **一句话快速洞察**：用一句话总结用户最需要关注的财务亮点或问题。这句话必须简短、精炼，直击要点。
2.  **详细分析报告**：提供一份详细的财务分析报告，使用Markdown格式。报告应包括但不限于：
    *   **消费结构分析**：分析各项支出的占比，指出哪些是主要开销。
    *   **收支平衡评估**：评估用户的收入是否能覆盖支出，是否存在财务风险。
    *   **资产状况诊断**：简要评估用户的资产和负债情况。
    *   **个性化建议**：根据以上分析，提供2-3条具体的、可操作的理财建议。

请确保“一句话快速洞察”和“详细分析报告”之间用两个换行符分隔。返回的格式必须严格遵守此约定。

财务数据如下：
` + "```json\n%s\n```"

// promptData is the JSON data block embedded in the prompt. Amounts are in
// major units here because this is a display boundary.
type promptData struct {
	MonthlyExpense     float64             `json:"monthly_expense"`
	MonthlyIncome      float64             `json:"monthly_income"`
	RecentTransactions []promptTransaction `json:"recent_transactions"`
	Accounts           []promptAccount     `json:"accounts"`
}

type promptTransaction struct {
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Remark   string  `json:"remark"`
}

type promptAccount struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// Service runs advisory analysis cycles and publishes their outcome to the
// projection. Concurrent refreshes are last-write-wins: a cycle that has
// been superseded discards its result instead of publishing stale state.
type Service struct {
	ledger  services.Ledger
	proj    *projection.Projector
	client  Completer
	timeout time.Duration
	now     func() time.Time

	mu  sync.Mutex
	gen uint64
}

// NewService creates a new advisory service.
func NewService(ledger services.Ledger, proj *projection.Projector, client Completer, timeout time.Duration) *Service {
	return &Service{
		ledger:  ledger,
		proj:    proj,
		client:  client,
		timeout: timeout,
		now:     time.Now,
	}
}

// Refresh starts an analysis cycle in the background and returns
// immediately. The loading flag is published before the model call and any
// previous error is cleared; on success insight and report are replaced
// together, on failure both retain their previous values and the error slot
// carries a user-facing message.
func (s *Service) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.proj.Publish(func(snap *projection.Snapshot) {
		snap.IsLoading = true
		snap.Error = ""
	})

	go s.run(ctx, gen)
}

func (s *Service) run(ctx context.Context, gen uint64) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt, err := s.buildPrompt()
	if err == nil {
		var content string
		content, err = s.client.Complete(ctx, prompt)
		if err == nil {
			insight, report := ParseResponse(content)
			s.publish(gen, func(snap *projection.Snapshot) {
				snap.Insight = insight
				snap.Report = report
			})
			return
		}
	}

	logger.Get().Warnw("advisory refresh failed", "error", err)
	message := errorMessage(err)
	s.publish(gen, func(snap *projection.Snapshot) {
		snap.Error = message
	})
}

// publish applies the outcome and drops the loading flag, unless a newer
// cycle has started since.
func (s *Service) publish(gen uint64, apply func(*projection.Snapshot)) {
	s.mu.Lock()
	superseded := gen != s.gen
	s.mu.Unlock()
	if superseded {
		return
	}

	s.proj.Publish(func(snap *projection.Snapshot) {
		apply(snap)
		snap.IsLoading = false
	})
}

// buildPrompt assembles the analysis prompt from current-month ledger state.
func (s *Service) buildPrompt() (string, error) {
	now := s.now()
	year, month := now.Year(), int(now.Month())

	monthly, err := s.ledger.MonthlyStats(year, month)
	if err != nil {
		return "", err
	}
	start, end := services.MonthBounds(year, now.Month(), now.Location())
	transactions, err := s.ledger.TransactionsByPeriod(start, end)
	if err != nil {
		return "", err
	}
	accounts, err := s.ledger.AllAccounts()
	if err != nil {
		return "", err
	}

	data := promptData{
		MonthlyExpense:     monthly.Expense.Major(),
		MonthlyIncome:      monthly.Income.Major(),
		RecentTransactions: []promptTransaction{},
		Accounts:           []promptAccount{},
	}

	if len(transactions) > maxPromptTransactions {
		transactions = transactions[:maxPromptTransactions]
	}
	for _, t := range transactions {
		categoryName := "未知"
		category, err := s.ledger.CategoryByID(t.CategoryID)
		if err != nil {
			return "", err
		}
		if category != nil {
			categoryName = category.Name
		}
		data.RecentTransactions = append(data.RecentTransactions, promptTransaction{
			Amount:   t.Amount.Major(),
			Type:     t.Kind.Label(),
			Category: categoryName,
			Remark:   t.Remark,
		})
	}

	for _, a := range accounts {
		data.Accounts = append(data.Accounts, promptAccount{
			Name:    a.Name,
			Balance: a.Balance.Major(),
		})
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorUnknown, err)
	}
	return fmt.Sprintf(promptTemplate, encoded), nil
}

// ParseResponse splits the model reply into the one-line insight and the
// detailed report on the first blank line. A reply without the separator is
// treated as insight-only.
func ParseResponse(content string) (insight, report string) {
	parts := strings.SplitN(content, "\n\n", 2)
	insight = parts[0]
	if len(parts) == 2 {
		report = parts[1]
	}
	return insight, report
}

// errorMessage renders a failure as the user-facing template plus detail.
func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.ErrAdvisorUnknown, err)
	}
	if appErr.Internal != nil {
		return fmt.Sprintf("%s\n详细信息: %s", appErr.Message, appErr.Internal.Error())
	}
	return appErr.Message
}
