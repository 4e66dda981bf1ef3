package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"csv2phon/internal/project"
	"csv2phon/internal/session"
)

const timeLayout = "2006-01-02 15:04"

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect the project store",
	}

	projectCmd.AddCommand(newCorporaCommand(ctx))
	projectCmd.AddCommand(newSessionsCommand(ctx))
	projectCmd.AddCommand(newShowCommand(ctx))

	return projectCmd
}

func newCorporaCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "corpora",
		Short: "List corpora and their session counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(store *project.Store) error {
				corpora, err := store.Corpora(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(corpora) == 0 {
					fmt.Fprintln(out, "No corpora")
					return nil
				}
				rows := make([][]string, 0, len(corpora))
				for _, c := range corpora {
					rows = append(rows, []string{
						c.Name,
						fmt.Sprintf("%d", c.Sessions),
						c.CreatedAt.Local().Format(timeLayout),
						c.Description,
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					headers: []string{"Corpus", "Sessions", "Created", "Description"},
					aligns:  []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
					wrap:    []int{3},
				}, rows))
				return nil
			})
		},
	}
}

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions CORPUS",
		Short: "List the sessions of a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(store *project.Store) error {
				infos, err := store.Sessions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(infos) == 0 {
					fmt.Fprintf(out, "No sessions in %s\n", args[0])
					return nil
				}
				rows := make([][]string, 0, len(infos))
				for _, info := range infos {
					rows = append(rows, []string{
						info.Name,
						fmt.Sprintf("%d", info.Records),
						fmt.Sprintf("%d", info.Participants),
						humanize.Time(info.UpdatedAt),
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					headers: []string{"Session", "Records", "Participants", "Updated"},
					aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
				}, rows))
				return nil
			})
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var showAlignments bool

	cmd := &cobra.Command{
		Use:   "show CORPUS SESSION",
		Short: "Print the participants and records of a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(store *project.Store) error {
				sess, err := store.LoadSession(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				writeSession(out, sess, showAlignments, shouldColorize(out))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showAlignments, "alignments", false, "Print phone alignments under each record")
	return cmd
}

func writeSession(out io.Writer, sess *session.Session, showAlignments bool, colorize bool) {
	fprintLines(out, renderSectionHeader(sess.Corpus+"/"+sess.Name, colorize))
	if sess.Date != nil {
		fmt.Fprintln(out, renderStatusLine("Date", statusInfo, sess.Date.Format(session.DateLayout), colorize))
	}
	if sess.Media != "" {
		fmt.Fprintln(out, renderStatusLine("Media", statusInfo, sess.Media, colorize))
	}

	if len(sess.Participants) > 0 {
		rows := make([][]string, 0, len(sess.Participants))
		for _, p := range sess.Participants {
			rows = append(rows, []string{p.ID, p.Name, p.Role, p.Age, p.Language})
		}
		fmt.Fprintln(out, renderTable(tableSpec{
			headers: []string{"ID", "Name", "Role", "Age", "Language"},
		}, rows))
	}

	headers := []string{"#", "Speaker", session.TierOrthography, session.TierIPATarget, session.TierIPAActual, session.TierSegment}
	rows := make([][]string, 0, len(sess.Records))
	for i, rec := range sess.Records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			speakerName(sess, rec.Speaker),
			fieldText(rec, session.TierOrthography),
			fieldText(rec, session.TierIPATarget),
			fieldText(rec, session.TierIPAActual),
			fieldText(rec, session.TierSegment),
		})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		headers: headers,
		aligns:  []columnAlignment{alignRight},
		wrap:    []int{2, 3, 4},
	}, rows))

	if !showAlignments {
		return
	}
	for i, rec := range sess.Records {
		for g := range rec.Alignments {
			pm, ok := rec.Alignment(g)
			if !ok {
				continue
			}
			label := fmt.Sprintf("Record %d group %d", i+1, g+1)
			fmt.Fprintln(out, renderStatusLine(label, statusInfo, pm.String(), colorize))
		}
	}
}

func speakerName(sess *session.Session, id string) string {
	if id == "" {
		return ""
	}
	if p, ok := sess.ParticipantByID(id); ok {
		return p.DisplayName()
	}
	return id
}

// fieldText renders a field with multiple groups as bracketed groups.
func fieldText(rec *session.Record, name string) string {
	field, ok := rec.Field(name)
	if !ok || field.Len() == 0 {
		return ""
	}
	if field.Len() == 1 {
		return field.Values[0].String()
	}
	parts := make([]string, 0, field.Len())
	for _, v := range field.Values {
		parts = append(parts, "["+v.String()+"]")
	}
	return strings.Join(parts, " ")
}
