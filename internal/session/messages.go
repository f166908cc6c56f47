package session

import (
	"fmt"
	"strings"

	"github.com/rentlab/lotclone/internal/lot"
)

// CommandName is the slash command that starts a replication dialog.
const CommandName = "lotclone"

const (
	pendingWaitLots      = "lotclone:wait_lots"
	pendingWaitDurations = "lotclone:wait_durations"
	pendingWaitDiscount  = "lotclone:wait_discount"

	actionCreate = "lotclone:create"
	actionCancel = "lotclone:cancel"
)

const (
	commandDescription = "Создать копии лота под разные длительности с перерасчётом цены"

	messageAskLots     = "📦 Пришлите ID исходного лота. Можно несколько через запятую или пробел. Пример: `301, 305 402`."
	messageNoLotIDs    = "❌ Не вижу ID. Пришлите один или несколько через запятую или пробел."
	messageAskDiscount = "💸 Укажите скидку в процентах от базовой цены.\nМожно так: `10` или `10%` (диапазон 0–90)."
	messageBadDiscount = "❌ Скидка должна быть числом от 0 до 90."
	messageSessionLost = "❌ Сессия не найдена. Запустите /lotclone заново."
	messageCancelled   = "Действие отменено."
	messageCreating    = "⏳ Создаю лоты..."

	messageAskDurationsFormat = "⏱ Укажите длительности через запятую.\nПримеры: `6`, `0.5`, `6h` / `6ч`, `12 часов`, `1d` / `1д`, `7д`.\n\nБазовая цена (за 1 час, лот #%d): **%d**"
	messageBadDurations       = "❌ Не понял длительности. Пример: `0.5, 1, 2, 3`"
	messageFetchFailedFormat  = "❌ Не смог получить данные лота #%d."
	messageDoneFormat         = "✅ Готово. Создано: %d. Ошибок: %d."

	buttonCreateLabel = "✅ Создать"
	buttonCancelLabel = "❌ Отмена"

	reportHeaderIDs     = "🆕 Новые лоты (только ID):"
	reportHeaderByHours = "🕒 Новые лоты (ID + длительности):"
)

func previewMessage(r *Replication) string {
	ids := make([]string, 0, len(r.LotIDs))
	for _, id := range r.LotIDs {
		ids = append(ids, fmt.Sprintf("#%d", id))
	}

	var b strings.Builder
	b.WriteString("🧾 **Предпросмотр**\n")
	fmt.Fprintf(&b, "Лоты: `%s`\n", strings.Join(ids, ", "))
	fmt.Fprintf(&b, "Будет создано: **%d** шт.\n", r.VariantCount())
	fmt.Fprintf(&b, "Скидка: **%g%%**\n", r.Discount)
	fmt.Fprintf(&b, "-# Цены в предпросмотре считаются по лоту #%d, при создании берётся цена каждого исходника.\n\n", r.LotIDs[0])
	b.WriteString(strings.Join(previewLines(r.Reference().PricePerHour, r.Durations, r.Discount), "\n"))
	return b.String()
}

// previewLines prices every duration against the reference lot only.
func previewLines(pricePerHour float64, durations []float64, discount float64) []string {
	lines := make([]string, 0, len(durations))
	for _, hours := range durations {
		price := lot.VariantPrice(pricePerHour, hours, discount)
		line := fmt.Sprintf("• %s → %d", lot.ShortDuration(hours), price.Display)
		if discount > 0 {
			line += fmt.Sprintf(" (−%g%%)", discount)
		}
		lines = append(lines, line)
	}
	return lines
}
