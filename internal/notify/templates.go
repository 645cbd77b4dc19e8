package notify

import (
	"fmt"
	"strings"

	"github.com/inventopredict/backend-go/internal/domain"
)

const signature = "– InventOPredict Team"

// Render produces the subject and body for a notification bucket. Product
// names keep the order they were queued in.
func Render(kind domain.NotificationKind, products []string) (subject, body string) {
	list := bulletList(products)

	switch kind {
	case domain.KindTwoDay:
		subject = "Upcoming Stockout Alert (2 Days Left)"
		body = fmt.Sprintf(`Hello,

The following product(s) are expected to run out of stock in 2 days:

%s

Please plan inventory accordingly.

%s
`, list, signature)

	case domain.KindOneDay:
		subject = "Stockout Alert (1 Day Left)"
		body = fmt.Sprintf(`Hello,

The following product(s) are expected to run out of stock tomorrow:

%s

Immediate action is recommended.

%s
`, list, signature)

	case domain.KindToday:
		subject = "Stockout Alert (Today)"
		body = fmt.Sprintf(`Hello,

The following product(s) are expected to run out of stock today:

%s

Please take urgent action.

%s
`, list, signature)

	case domain.KindOverdue:
		subject = "Already Stockout Alert"
		body = fmt.Sprintf(`Hello,

The following product(s) are already out of stock:

%s

Please take urgent action.

%s
`, list, signature)

	case domain.KindConfirmation:
		subject = "Stockout Reminders Activated"
		body = fmt.Sprintf(`Hello,

Your stockout reminders have been successfully activated.

You will receive reminder emails:
• 2 days before stockout
• 1 day before stockout
• On the stockout day

Tracked products:
%s

%s
`, list, signature)
	}

	return subject, body
}

func bulletList(products []string) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, "• "+p)
	}
	return strings.Join(lines, "\n")
}
