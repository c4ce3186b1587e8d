package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/taldoflemis/veggie-delight/preorder"
)

// kiosk is the interactive front for the pre-order workflow: it walks one
// customer at a time through the wizard steps against the counter API.
type kiosk struct {
	client *preorder.APIClient
	in     *bufio.Scanner
	out    io.Writer
}

func newKiosk(client *preorder.APIClient, in io.Reader, out io.Writer) *kiosk {
	return &kiosk{
		client: client,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run drives the wizard until the customer leaves. The loop dispatches on the
// workflow state so back-navigation simply falls through to the right step.
func (k *kiosk) Run(ctx context.Context) error {
	menu, err := k.client.GetMenu(ctx)
	if err != nil {
		return fmt.Errorf("fetch menu: %w", err)
	}

	wf := preorder.NewWorkflow(k.client)

	for {
		var err error
		switch wf.Step() {
		case preorder.StepContactInfo:
			err = k.contactStep(wf)
		case preorder.StepMenuSelection:
			err = k.menuStep(wf, menu)
		case preorder.StepReview:
			err = k.reviewStep(ctx, wf)
		case preorder.StepConfirmed:
			order := wf.ConfirmedOrder()
			fmt.Fprintf(k.out, "Order confirmed! Your number is %s.\n", order.OrderNumber)
			if k.prompt("Place another order? (yes/no)") != "yes" {
				return nil
			}
			err = wf.Reset()
		}
		if err != nil {
			return err
		}
	}
}

func (k *kiosk) contactStep(wf *preorder.Workflow) error {
	fmt.Fprintln(k.out, "== Contact details ==")

	for {
		wf.SetName(k.prompt("Name"))
		wf.SetEmail(k.prompt("Email"))
		wf.SetPhone(k.prompt("Phone"))

		orderType := preorder.OrderTypePickup
		if strings.EqualFold(k.prompt("Order type (pickup/delivery)"), "delivery") {
			orderType = preorder.OrderTypeDelivery
		}
		wf.SetOrderType(orderType)
		if orderType == preorder.OrderTypeDelivery {
			wf.SetAddress(k.prompt("Delivery address"))
		}

		minutes, err := strconv.Atoi(k.prompt("Ready in how many minutes"))
		if err != nil || minutes < 1 {
			minutes = 60
		}
		wf.SetRequestedTime(time.Now().Add(time.Duration(minutes) * time.Minute))

		err = wf.ContinueToMenu()
		if err == nil {
			return nil
		}

		var vErr *preorder.ValidationError
		if errors.As(err, &vErr) {
			fmt.Fprintln(k.out, "Please fix the following:")
			for field, msg := range vErr.Fields {
				fmt.Fprintf(k.out, "  %s: %s\n", field, msg)
			}
			continue
		}
		return err
	}
}

func (k *kiosk) menuStep(wf *preorder.Workflow, menu []preorder.MenuItem) error {
	fmt.Fprintln(k.out, "== Menu ==")
	for i, item := range menu {
		fmt.Fprintf(k.out, "%2d. %s (%s)\n", i+1, item.Name, formatCents(item.Price))
	}
	fmt.Fprintln(k.out, "Enter an item number to add it, 'rm N' to remove, 'done' to review, 'back' for contact details.")

	for {
		fmt.Fprintf(k.out, "Cart total %s > ", formatCents(wf.Total()))
		if !k.in.Scan() {
			return io.EOF
		}
		input := strings.TrimSpace(k.in.Text())

		switch {
		case input == "done":
			err := wf.ContinueToReview()
			if errors.Is(err, preorder.ErrEmptyCart) {
				fmt.Fprintln(k.out, "No items selected yet.")
				continue
			}
			return err
		case input == "back":
			return wf.BackToContact()
		case strings.HasPrefix(input, "rm "):
			idx, err := strconv.Atoi(strings.TrimPrefix(input, "rm "))
			if err != nil || idx < 1 || idx > len(menu) {
				fmt.Fprintln(k.out, "Unknown item.")
				continue
			}
			wf.RemoveItem(menu[idx-1].ID)
		default:
			idx, err := strconv.Atoi(input)
			if err != nil || idx < 1 || idx > len(menu) {
				fmt.Fprintln(k.out, "Unknown item.")
				continue
			}
			wf.SelectItem(menu[idx-1])
		}
	}
}

func (k *kiosk) reviewStep(ctx context.Context, wf *preorder.Workflow) error {
	fmt.Fprintln(k.out, "== Review ==")
	for _, line := range wf.Lines() {
		fmt.Fprintf(k.out, "  %dx %s  %s\n", line.Quantity, line.Name,
			formatCents(line.UnitPrice*int64(line.Quantity)))
	}
	fmt.Fprintf(k.out, "Total: %s\n", formatCents(wf.Total()))
	fmt.Fprintf(k.out, "Estimated ready: %s\n",
		wf.EstimatedReadyTime().Format(time.Kitchen))

	for {
		switch k.prompt("Submit order? (yes/back)") {
		case "yes":
			_, err := wf.Submit(ctx)
			if err == nil {
				return nil
			}
			var sErr *preorder.SubmissionError
			if errors.As(err, &sErr) {
				fmt.Fprintf(k.out, "Submission failed: %v. Try again.\n", sErr.Reason)
				continue
			}
			return err
		case "back":
			return wf.BackToMenu()
		default:
			fmt.Fprintln(k.out, "Please answer 'yes' or 'back'.")
		}
	}
}

func (k *kiosk) prompt(label string) string {
	fmt.Fprintf(k.out, "%s: ", label)
	if !k.in.Scan() {
		return ""
	}
	return strings.TrimSpace(k.in.Text())
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
