package domain

import "time"

// RunClock отслеживает жесткий wall-clock дедлайн всего запуска.
// Дедлайн кооперативный: перед началом каждой новой единицы работы
// (следующая страница списка, следующий детальный запрос) компоненты
// спрашивают Expired(); уже начатые запросы дорабатывают сами.
type RunClock struct {
	start  time.Time
	budget time.Duration
}

// NewRunClock создает часы запуска. budget <= 0 означает "без лимита".
func NewRunClock(budget time.Duration) *RunClock {
	return &RunClock{start: time.Now(), budget: budget}
}

// Expired сообщает, истек ли бюджет времени. nil-часы никогда не истекают,
// чтобы юзкейсы можно было запускать без дедлайна в тестах.
func (c *RunClock) Expired() bool {
	if c == nil || c.budget <= 0 {
		return false
	}
	return time.Since(c.start) >= c.budget
}

// Elapsed возвращает время с начала запуска.
func (c *RunClock) Elapsed() time.Duration {
	if c == nil {
		return 0
	}
	return time.Since(c.start)
}
