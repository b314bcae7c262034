package views

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/hance08/weka/internal/engine"
)

type AccountTableView struct {
	precision int32
}

func NewAccountTableView(precision int32) *AccountTableView {
	return &AccountTableView{precision: precision}
}

func (v *AccountTableView) Render(accounts []engine.AccountSummary) error {
	headers := []string{"Client", "Available", "Held", "Total", "Locked"}
	tableData := pterm.TableData{headers}

	for _, acct := range accounts {
		available := acct.Available.StringFixed(v.precision)
		held := acct.Held.StringFixed(v.precision)
		total := acct.Total.StringFixed(v.precision)

		locked := pterm.Green("no")
		if acct.Locked {
			locked = pterm.Red("LOCKED")
			available = pterm.Red(available)
			held = pterm.Red(held)
			total = pterm.Red(total)
		} else if acct.Available.Sign() < 0 {
			available = pterm.Yellow(available)
		}

		tableData = append(tableData, []string{
			strconv.FormatUint(uint64(acct.Client), 10),
			available,
			held,
			total,
			locked,
		})
	}

	pterm.DefaultSection.Printf("Account Balances")
	if err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))

	return nil
}
