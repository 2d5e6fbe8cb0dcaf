package interview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// TerminalPrompter asks questions on an interactive terminal. Single-choice
// questions are answered by number, multi-choice by a comma-separated list of
// numbers, confirmations by y/n.
type TerminalPrompter struct {
	rl *readline.Instance
}

var _ Prompter = &TerminalPrompter{}

// NewTerminalPrompter creates a prompter reading from the controlling
// terminal. Close must be called when the interview is done.
func NewTerminalPrompter() (*TerminalPrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return &TerminalPrompter{rl: rl}, nil
}

// Close releases the terminal.
func (p *TerminalPrompter) Close() error {
	return p.rl.Close()
}

func (p *TerminalPrompter) readLine(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", fmt.Errorf("interview interrupted")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *TerminalPrompter) Input(question string) (string, error) {
	return p.readLine(question + " ")
}

func (p *TerminalPrompter) Select(question string, choices []string) (string, error) {
	fmt.Println(question)
	for i, choice := range choices {
		fmt.Printf("  %d) %s\n", i+1, choice)
	}

	for {
		line, err := p.readLine("> ")
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(choices) {
			fmt.Printf("enter a number between 1 and %d\n", len(choices))
			continue
		}
		return choices[n-1], nil
	}
}

func (p *TerminalPrompter) MultiSelect(question string, choices []string) ([]string, error) {
	fmt.Println(question + " (comma-separated, empty for none)")
	for i, choice := range choices {
		fmt.Printf("  %d) %s\n", i+1, choice)
	}

	for {
		line, err := p.readLine("> ")
		if err != nil {
			return nil, err
		}
		if line == "" {
			return nil, nil
		}

		seen := make(map[int]bool)
		var selected []string
		valid := true
		for _, part := range strings.Split(line, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 1 || n > len(choices) {
				fmt.Printf("enter numbers between 1 and %d, separated by commas\n", len(choices))
				valid = false
				break
			}
			if !seen[n] {
				seen[n] = true
				selected = append(selected, choices[n-1])
			}
		}
		if valid {
			return selected, nil
		}
	}
}

func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	for {
		line, err := p.readLine(question + " [y/N] ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		default:
			fmt.Println("answer y or n")
		}
	}
}
