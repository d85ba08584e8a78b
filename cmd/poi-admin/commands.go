package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/altinukshini/poi-admin/internal/auth"
	"github.com/altinukshini/poi-admin/internal/model"
	"github.com/altinukshini/poi-admin/internal/query"
	"github.com/altinukshini/poi-admin/internal/router"
)

func newEncodeCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a location from a search read on stdin",
		Long: `Reads a search as JSON on stdin, in the same shape "decode" prints,
and writes the location carrying it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			s, err := query.Decode(strings.TrimSpace(string(data)))
			if err != nil {
				return err
			}
			loc, err := query.Location(path, s)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loc)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", router.MainPath, "Path the search is attached to")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var color bool
	cmd := &cobra.Command{
		Use:   "decode LOCATION",
		Short: "Print the search carried by a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := router.Parse(args[0])
			if err != nil {
				return err
			}
			s, present, err := query.FromValues(loc.Query)
			if err != nil {
				return err
			}
			if !present {
				s = model.DefaultState()
			}
			enc, err := query.Encode(s)
			if err != nil {
				return err
			}
			pretty, err := query.Indent(enc, color)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty)
			if summary := s.Summary(); summary != "" && !s.IsDefault() {
				fmt.Fprintln(cmd.ErrOrStderr(), summary)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&color, "color", false, "Colorize the output")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for POI_ADMIN_PASSWORD_HASH",
		Long: `Prompts for a password when run in a terminal, otherwise reads the
first line of stdin, and prints its bcrypt hash.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			h, err := auth.Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func readPassword(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		first, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		fmt.Fprint(cmd.ErrOrStderr(), "Again: ")
		second, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		if string(first) != string(second) {
			return "", errors.New("passwords do not match")
		}
		return string(first), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
