package firebase

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/runner"
)

// maxOutputInError bounds how much CLI output is carried into error messages.
const maxOutputInError = 400

// FirebaseProvisioningRepository drives the Firebase CLI on behalf of one account.
type FirebaseProvisioningRepository struct {
	runner  runner.CommandRunner
	binary  string
	account string
}

// NewFirebaseProvisioningRepository resolves the CLI binary once and binds the
// repository to the given account.
func NewFirebaseProvisioningRepository(
	commandRunner runner.CommandRunner,
	binary, account string,
) (repositories.ProvisioningRepository, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("firebase CLI %q not found in PATH: %w", binary, err)
	}
	return newFirebaseProvisioningRepository(commandRunner, path, account), nil
}

func newFirebaseProvisioningRepository(
	commandRunner runner.CommandRunner,
	binary, account string,
) *FirebaseProvisioningRepository {
	return &FirebaseProvisioningRepository{
		runner:  commandRunner,
		binary:  binary,
		account: account,
	}
}

func (it *FirebaseProvisioningRepository) CreateProject(ctx context.Context, projectID, displayName string) error {
	_, err := it.run(ctx, runner.CommandOptions{}, "projects:create", projectID, "--display-name", displayName)
	return err
}

func (it *FirebaseProvisioningRepository) CreateApp(
	ctx context.Context,
	projectID string,
	platform entities.Platform,
	name, bundleID string,
) (string, error) {
	args := []string{"apps:create", cliPlatform(platform), name}
	opts := runner.CommandOptions{}

	switch platform {
	case entities.PlatformIOS:
		args = append(args, "--bundle-id", bundleID)
		// the CLI asks for an optional App Store id; an empty answer skips it
		opts.Stdin = "\n"
	case entities.PlatformAndroid:
		args = append(args, "--package-name", bundleID)
	case entities.PlatformWeb:
	default:
		return "", fmt.Errorf("unsupported platform %q", platform)
	}
	args = append(args, "--project", projectID, "--json")

	result, err := it.run(ctx, opts, args...)
	if err != nil {
		return "", err
	}
	return result.Combined(), nil
}

func (it *FirebaseProvisioningRepository) DownloadSDKConfig(
	ctx context.Context,
	projectID string,
	platform entities.Platform,
	appID string,
) ([]byte, error) {
	result, err := it.run(ctx, runner.CommandOptions{},
		"apps:sdkconfig", cliPlatform(platform), appID, "--project", projectID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Stdout) == "" {
		return nil, fmt.Errorf("empty %s config returned for app %s", platform, appID)
	}
	return []byte(result.Stdout), nil
}

// DatabaseExists reports whether the project already has a default database.
func (it *FirebaseProvisioningRepository) DatabaseExists(ctx context.Context, projectID string) (bool, error) {
	result, err := it.run(ctx, runner.CommandOptions{},
		"firestore:databases:list", "--project", projectID, "--json")
	if err != nil {
		return false, err
	}

	if gjson.Valid(result.Stdout) {
		found := false
		gjson.Get(result.Stdout, "result.#.name").ForEach(func(_, value gjson.Result) bool {
			if strings.HasSuffix(value.String(), "/databases/"+entities.DefaultDatabaseID) {
				found = true
				return false
			}
			return true
		})
		return found, nil
	}
	return strings.Contains(result.Combined(), entities.DefaultDatabaseID), nil
}

func (it *FirebaseProvisioningRepository) CreateDatabase(ctx context.Context, projectID, location string) error {
	_, err := it.run(ctx, runner.CommandOptions{},
		"firestore:databases:create", entities.DefaultDatabaseID, "--location", location, "--project", projectID)
	return err
}

func (it *FirebaseProvisioningRepository) DeployRules(ctx context.Context, projectID, dir string) error {
	_, err := it.run(ctx, runner.CommandOptions{Dir: dir},
		"deploy", "--only", "firestore:rules", "--project", projectID)
	return err
}

// run appends the account scoping flags and turns a non-zero exit into an
// error carrying the exit code and the tail of the output.
func (it *FirebaseProvisioningRepository) run(
	ctx context.Context,
	opts runner.CommandOptions,
	args ...string,
) (runner.CommandResult, error) {
	full := append([]string{}, args...)
	full = append(full, "--non-interactive")
	if it.account != "" {
		full = append(full, "--account", it.account)
	}

	logger.Debugf("firebase %s", strings.Join(args, " "))
	result, err := it.runner.Run(ctx, it.binary, full, opts)
	if err != nil {
		return result, fmt.Errorf("failed to run firebase %s: %w", args[0], err)
	}
	if result.ExitCode != 0 {
		return result, fmt.Errorf(
			"firebase %s exited with code %d: %s", args[0], result.ExitCode, tail(result.Combined()))
	}
	return result, nil
}

func cliPlatform(platform entities.Platform) string {
	return strings.ToUpper(string(platform))
}

func tail(output string) string {
	output = strings.TrimSpace(output)
	if len(output) > maxOutputInError {
		return "..." + output[len(output)-maxOutputInError:]
	}
	return output
}
