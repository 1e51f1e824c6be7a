package statistics

// HealthScore computes the 0-100 financial health score from a 50-point
// baseline. Point deltas reward positive balance, savings rate, staying
// under the configured budget limit, and a low expense-to-income ratio.
// Ratios with a zero denominator skip their component instead of dividing.
func HealthScore(balance, income, expense, budgetLimit float64) int {
	score := 50.0

	// Balance positivity, with a larger bonus when the cushion exceeds half
	// the period's income.
	switch {
	case balance > 0 && income > 0 && balance > income/2:
		score += 15
	case balance > 0:
		score += 10
	case balance < 0:
		score -= 15
	}

	// Savings rate thresholds. Skipped entirely when there is no income.
	if income > 0 {
		rate := (income - expense) / income
		switch {
		case rate >= 0.30:
			score += 15
		case rate >= 0.20:
			score += 10
		case rate >= 0.10:
			score += 5
		case rate >= 0:
			// Breaking even earns nothing and costs nothing.
		default:
			score -= 10
		}
	}

	// Budget-limit adherence. Only applies when a limit is configured.
	if budgetLimit > 0 {
		ratio := expense / budgetLimit
		switch {
		case ratio <= 0.8:
			score += 10
		case ratio <= 1.0:
			score += 5
		case ratio <= 1.2:
			score -= 5
		default:
			score -= 10
		}
	}

	// Expense-to-income ratio thresholds.
	if income > 0 {
		ratio := expense / income
		switch {
		case ratio <= 0.5:
			score += 10
		case ratio <= 0.8:
			score += 5
		case ratio <= 1.0:
			// Spending everything is already penalized by the savings rate.
		default:
			score -= 10
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}
