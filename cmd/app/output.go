package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/seinn09/digforweb/internal/domain"
)

func printJSON(v any) error {
	b, err := jsonMarshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatMaybeUint(v *uint) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func printVictims(items []domain.Victim) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(item.ID), 10),
			item.Name,
			item.Contact,
			item.Location,
			item.ReportDate,
			formatTime(item.UpdatedAt),
		})
	}
	printTable([]string{"ID", "NAME", "CONTACT", "LOCATION", "REPORTED", "UPDATED_AT"}, rows)
}

func printVictimDetail(item domain.Victim) {
	printKV([][2]string{
		{"id", strconv.FormatUint(uint64(item.ID), 10)},
		{"name", item.Name},
		{"contact", item.Contact},
		{"location", item.Location},
		{"report_date", item.ReportDate},
		{"description", item.ReportDescription},
		{"created_at", formatTime(item.CreatedAt)},
		{"updated_at", formatTime(item.UpdatedAt)},
	})
}

func printCases(items []domain.Case) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(item.ID), 10),
			strconv.FormatUint(uint64(item.VictimID), 10),
			item.CaseType,
			item.IncidentDate,
			item.Status,
			formatTime(item.UpdatedAt),
		})
	}
	printTable([]string{"ID", "VICTIM_ID", "TYPE", "INCIDENT", "STATUS", "UPDATED_AT"}, rows)
}

func printCaseDetail(item domain.Case) {
	printKV([][2]string{
		{"id", strconv.FormatUint(uint64(item.ID), 10)},
		{"victim_id", strconv.FormatUint(uint64(item.VictimID), 10)},
		{"type", item.CaseType},
		{"incident_date", item.IncidentDate},
		{"summary", item.Summary},
		{"status", item.Status},
		{"created_at", formatTime(item.CreatedAt)},
		{"updated_at", formatTime(item.UpdatedAt)},
	})
}

func printEvidenceList(items []domain.Evidence) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(item.ID), 10),
			strconv.FormatUint(uint64(item.CaseID), 10),
			item.EvidenceType,
			item.StorageLocation,
			item.HashValue,
			formatTime(item.UpdatedAt),
		})
	}
	printTable([]string{"ID", "CASE_ID", "TYPE", "STORAGE", "HASH", "UPDATED_AT"}, rows)
}

func printEvidenceDetail(item domain.Evidence) {
	printKV([][2]string{
		{"id", strconv.FormatUint(uint64(item.ID), 10)},
		{"case_id", strconv.FormatUint(uint64(item.CaseID), 10)},
		{"type", item.EvidenceType},
		{"storage", item.StorageLocation},
		{"hash", item.HashValue},
		{"collected_at", item.CollectionTime},
		{"created_at", formatTime(item.CreatedAt)},
		{"updated_at", formatTime(item.UpdatedAt)},
	})
}

func printActions(items []domain.ForensicAction) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(item.ID), 10),
			strconv.FormatUint(uint64(item.CaseID), 10),
			item.Stage,
			item.PersonInCharge,
			item.Status,
			formatTime(item.UpdatedAt),
		})
	}
	printTable([]string{"ID", "CASE_ID", "STAGE", "PIC", "STATUS", "UPDATED_AT"}, rows)
}

func printActionDetail(item domain.ForensicAction) {
	printKV([][2]string{
		{"id", strconv.FormatUint(uint64(item.ID), 10)},
		{"case_id", strconv.FormatUint(uint64(item.CaseID), 10)},
		{"stage", item.Stage},
		{"description", item.Description},
		{"pic", item.PersonInCharge},
		{"executed_at", item.ExecutionTime},
		{"status", item.Status},
		{"created_at", formatTime(item.CreatedAt)},
		{"updated_at", formatTime(item.UpdatedAt)},
	})
}

func printStats(item domain.Stats) {
	printKV([][2]string{
		{"victims", strconv.FormatInt(item.Victims, 10)},
		{"cases", strconv.FormatInt(item.Cases, 10)},
		{"evidence", strconv.FormatInt(item.Evidence, 10)},
		{"actions", strconv.FormatInt(item.Actions, 10)},
	})
}

func printAuditRecords(items []domain.AuditRecord) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(item.ID), 10),
			item.Action,
			item.TargetType,
			formatMaybeUint(item.TargetID),
			item.ActorUserEmail,
			formatTime(item.CreatedAt),
		})
	}
	printTable([]string{"ID", "ACTION", "TARGET_TYPE", "TARGET_ID", "ACTOR", "AT"}, rows)
}
