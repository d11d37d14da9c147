package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/services"
)

var (
	// swapped in tests
	readPasswordFunc = term.ReadPassword

	errPasswordMismatch = errors.New("passwords do not match")
)

func (cmd *commandLine) createUser(c *cli.Context) error {
	role := models.Role(strings.ToLower(c.String("role")))
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", c.String("role"))
	}

	pwd := c.String("password")
	if pwd == "" {
		var err error
		if pwd, err = cmd.promptPassword(); err != nil {
			return err
		}
	}

	actor := services.Actor{Role: models.RoleSuperAdmin, IPAddress: "cli"}
	usr, err := cmd.services().Auth.Register(c.Context, actor, &dto.RegisterRequest{
		Email:    c.String("email"),
		Password: pwd,
		Role:     role,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "User %s created with role %s (id %d)\n", usr.Email, usr.Role, usr.ID)
	return nil
}

func (cmd *commandLine) promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())

	fmt.Fprint(cmd.out, "Enter password: ")
	pwd, err := readPasswordFunc(fd)
	fmt.Fprintln(cmd.out)
	if err != nil {
		return "", err
	}

	fmt.Fprint(cmd.out, "Confirm password: ")
	confirm, err := readPasswordFunc(fd)
	fmt.Fprintln(cmd.out)
	if err != nil {
		return "", err
	}

	if string(pwd) != string(confirm) {
		return "", errPasswordMismatch
	}
	if len(pwd) < 6 {
		return "", errors.New("password must be at least 6 characters")
	}
	return string(pwd), nil
}
