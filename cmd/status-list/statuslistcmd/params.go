/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslistcmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"

	"github.com/cre8/ephemeral-proof-of-issuance/cmd/common"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compression"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/hashing"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/observability/tracing"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/statuslist"
)

const commonEnvVarUsageText = " Alternatively, this can be set with the following environment variable: "

const (
	kindFlagName  = "kind"
	kindEnvKey    = "STATUS_LIST_KIND"
	kindFlagUsage = "Status list kind: list, crl, bloom or cascading-bloom. Default: list." +
		commonEnvVarUsageText + kindEnvKey

	listIDFlagName  = "list-id"
	listIDEnvKey    = "STATUS_LIST_ID"
	listIDFlagUsage = "Identifier of the list, used as jti of the artifact. A random urn:uuid is used if not set." +
		commonEnvVarUsageText + listIDEnvKey

	issuerFlagName  = "issuer"
	issuerEnvKey    = "STATUS_LIST_ISSUER"
	issuerFlagUsage = "Issuer identifier written to the artifact and the secret payloads." +
		commonEnvVarUsageText + issuerEnvKey

	entriesFlagName  = "entries"
	entriesEnvKey    = "STATUS_LIST_ENTRIES"
	entriesFlagUsage = "Path to a JSON array of entries {\"id\", \"secret\" (base64, generated if absent), " +
		"\"valid\" (default true)}. Use - for stdin." + commonEnvVarUsageText + entriesEnvKey

	epochFlagName  = "epoch"
	epochEnvKey    = "STATUS_LIST_EPOCH"
	epochFlagUsage = "Epoch length in seconds. Default: 3600." + commonEnvVarUsageText + epochEnvKey

	hashAlgorithmFlagName  = "hash-algorithm"
	hashAlgorithmEnvKey    = "STATUS_LIST_HASH_ALGORITHM"
	hashAlgorithmFlagUsage = "Membership hash: SHA-256 or MurmurHash3. Default: SHA-256." +
		commonEnvVarUsageText + hashAlgorithmEnvKey

	hmacAlgorithmFlagName  = "hmac-algorithm"
	hmacAlgorithmEnvKey    = "STATUS_LIST_HMAC_ALGORITHM"
	hmacAlgorithmFlagUsage = "Token HMAC: SHA-256. Default: SHA-256." + commonEnvVarUsageText + hmacAlgorithmEnvKey

	compressionFlagName  = "compression"
	compressionEnvKey    = "STATUS_LIST_COMPRESSION"
	compressionFlagUsage = "Artifact compression: deflate, gzip, zstd or none. Default: deflate." +
		commonEnvVarUsageText + compressionEnvKey

	capacityFlagName  = "capacity"
	capacityEnvKey    = "STATUS_LIST_CAPACITY"
	capacityFlagUsage = "Bloom filter capacity. Default: 1000." + commonEnvVarUsageText + capacityEnvKey

	falsePositiveFlagName  = "false-positive"
	falsePositiveEnvKey    = "STATUS_LIST_FALSE_POSITIVE"
	falsePositiveFlagUsage = "Bloom filter false positive rate. Default: 0.01." +
		commonEnvVarUsageText + falsePositiveEnvKey

	maxLayersFlagName  = "max-layers"
	maxLayersEnvKey    = "STATUS_LIST_MAX_LAYERS"
	maxLayersFlagUsage = "Upper bound of cascade layers. Default: 5." + commonEnvVarUsageText + maxLayersEnvKey

	strictCascadeFlagName  = "strict-cascade"
	strictCascadeEnvKey    = "STATUS_LIST_STRICT_CASCADE"
	strictCascadeFlagUsage = "Fail instead of warn when the cascade does not converge within max-layers." +
		commonEnvVarUsageText + strictCascadeEnvKey

	workersFlagName  = "workers"
	workersEnvKey    = "STATUS_LIST_WORKERS"
	workersFlagUsage = "Number of hashing workers. Default: number of CPUs." + commonEnvVarUsageText + workersEnvKey

	signingKeyFlagName  = "signing-key"
	signingKeyEnvKey    = "STATUS_LIST_SIGNING_KEY"
	signingKeyFlagUsage = "Path to a PEM encoded private key. The artifact is left unsigned if not set." +
		commonEnvVarUsageText + signingKeyEnvKey

	keyIDFlagName  = "key-id"
	keyIDEnvKey    = "STATUS_LIST_KEY_ID"
	keyIDFlagUsage = "Key id written to the JWS header. Required with signing-key." + commonEnvVarUsageText + keyIDEnvKey

	signingAlgFlagName  = "signing-alg"
	signingAlgEnvKey    = "STATUS_LIST_SIGNING_ALG"
	signingAlgFlagUsage = "JWS algorithm. Default: ES256." + commonEnvVarUsageText + signingAlgEnvKey

	outputFlagName  = "output"
	outputEnvKey    = "STATUS_LIST_OUTPUT"
	outputFlagUsage = "Output file. Default: stdout." + commonEnvVarUsageText + outputEnvKey

	tracingProviderFlagName  = "tracing-provider"
	tracingProviderEnvKey    = "STATUS_LIST_TRACING_PROVIDER"
	tracingProviderFlagUsage = "Tracing exporter: JAEGER or STDOUT. Disabled if not set." +
		commonEnvVarUsageText + tracingProviderEnvKey

	metricsProviderFlagName  = "metrics-provider"
	metricsProviderEnvKey    = "STATUS_LIST_METRICS_PROVIDER"
	metricsProviderFlagUsage = "Metrics provider: prometheus writes the collected metrics to stderr on exit." +
		commonEnvVarUsageText + metricsProviderEnvKey

	secretPayloadFlagName  = "secret-payload"
	secretPayloadEnvKey    = "STATUS_LIST_SECRET_PAYLOAD"
	secretPayloadFlagUsage = "Path to a secret payload, or to issue output combined with subject." +
		commonEnvVarUsageText + secretPayloadEnvKey

	subjectFlagName  = "subject"
	subjectEnvKey    = "STATUS_LIST_SUBJECT"
	subjectFlagUsage = "Subject to pick from the secrets of an issue output." + commonEnvVarUsageText + subjectEnvKey

	holderFlagName  = "holder"
	holderEnvKey    = "STATUS_LIST_HOLDER"
	holderFlagUsage = "Holder identifier written to the token as iss." + commonEnvVarUsageText + holderEnvKey

	artifactFlagName  = "artifact"
	artifactEnvKey    = "STATUS_LIST_ARTIFACT"
	artifactFlagUsage = "Path to an artifact or to issue output. Without it the artifact of list-id is read from redis." +
		commonEnvVarUsageText + artifactEnvKey

	tokenFlagName  = "token"
	tokenEnvKey    = "STATUS_LIST_TOKEN"
	tokenFlagUsage = "Path to the token payload presented by the holder." + commonEnvVarUsageText + tokenEnvKey

	timeCheckFlagName  = "time-check"
	timeCheckEnvKey    = "STATUS_LIST_TIME_CHECK"
	timeCheckFlagUsage = "Reject artifacts past their expiry." + commonEnvVarUsageText + timeCheckEnvKey
)

const (
	defaultSigningAlg = "ES256"
	serviceName       = "status-list"
)

type issueParameters struct {
	kind            statuslist.Kind
	listID          string
	issuer          string
	entries         string
	storeOpts       []statuslist.Opt
	workers         int
	signingKey      string
	keyID           string
	signingAlg      string
	output          string
	logLevel        string
	tracingProvider string
	metricsProvider string
	redis           *common.RedisParameters
}

type tokenParameters struct {
	secretPayload string
	subject       string
	holder        string
	output        string
	logLevel      string
}

type verifyParameters struct {
	artifact  string
	listID    string
	token     string
	timeCheck bool
	logLevel  string
	redis     *common.RedisParameters
}

func createLogLevelFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(common.LogLevelFlagName, common.LogLevelFlagShorthand, "", common.LogLevelPrefixFlagUsage)
}

func getLogLevel(cmd *cobra.Command) (string, error) {
	return cmdutils.GetUserSetVarFromString(cmd, common.LogLevelFlagName, common.LogLevelEnvKey, true)
}

func createIssueFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(kindFlagName, "k", "", kindFlagUsage)
	cmd.Flags().StringP(listIDFlagName, "", "", listIDFlagUsage)
	cmd.Flags().StringP(issuerFlagName, "i", "", issuerFlagUsage)
	cmd.Flags().StringP(entriesFlagName, "e", "", entriesFlagUsage)
	cmd.Flags().StringP(epochFlagName, "", "", epochFlagUsage)
	cmd.Flags().StringP(hashAlgorithmFlagName, "", "", hashAlgorithmFlagUsage)
	cmd.Flags().StringP(hmacAlgorithmFlagName, "", "", hmacAlgorithmFlagUsage)
	cmd.Flags().StringP(compressionFlagName, "", "", compressionFlagUsage)
	cmd.Flags().StringP(capacityFlagName, "", "", capacityFlagUsage)
	cmd.Flags().StringP(falsePositiveFlagName, "", "", falsePositiveFlagUsage)
	cmd.Flags().StringP(maxLayersFlagName, "", "", maxLayersFlagUsage)
	cmd.Flags().StringP(strictCascadeFlagName, "", "", strictCascadeFlagUsage)
	cmd.Flags().StringP(workersFlagName, "", "", workersFlagUsage)
	cmd.Flags().StringP(signingKeyFlagName, "", "", signingKeyFlagUsage)
	cmd.Flags().StringP(keyIDFlagName, "", "", keyIDFlagUsage)
	cmd.Flags().StringP(signingAlgFlagName, "", "", signingAlgFlagUsage)
	cmd.Flags().StringP(outputFlagName, "o", "", outputFlagUsage)
	cmd.Flags().StringP(tracingProviderFlagName, "", "", tracingProviderFlagUsage)
	cmd.Flags().StringP(metricsProviderFlagName, "", "", metricsProviderFlagUsage)
	createLogLevelFlag(cmd)
	common.Flags(cmd)
}

// nolint:funlen,gocyclo
func getIssueParameters(cmd *cobra.Command) (*issueParameters, error) {
	kind, err := cmdutils.GetUserSetVarFromString(cmd, kindFlagName, kindEnvKey, true)
	if err != nil {
		return nil, err
	}

	if kind == "" {
		kind = string(statuslist.KindList)
	}

	parsedKind, err := statuslist.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	listID, err := cmdutils.GetUserSetVarFromString(cmd, listIDFlagName, listIDEnvKey, true)
	if err != nil {
		return nil, err
	}

	issuer, err := cmdutils.GetUserSetVarFromString(cmd, issuerFlagName, issuerEnvKey, false)
	if err != nil {
		return nil, err
	}

	entries, err := cmdutils.GetUserSetVarFromString(cmd, entriesFlagName, entriesEnvKey, false)
	if err != nil {
		return nil, err
	}

	storeOpts, err := getStoreOpts(cmd)
	if err != nil {
		return nil, err
	}

	workers, err := getInt(cmd, workersFlagName, workersEnvKey)
	if err != nil {
		return nil, err
	}

	signingKey, err := cmdutils.GetUserSetVarFromString(cmd, signingKeyFlagName, signingKeyEnvKey, true)
	if err != nil {
		return nil, err
	}

	keyID, err := cmdutils.GetUserSetVarFromString(cmd, keyIDFlagName, keyIDEnvKey, true)
	if err != nil {
		return nil, err
	}

	if signingKey != "" && keyID == "" {
		return nil, fmt.Errorf("%s is required with %s", keyIDFlagName, signingKeyFlagName)
	}

	signingAlg, err := cmdutils.GetUserSetVarFromString(cmd, signingAlgFlagName, signingAlgEnvKey, true)
	if err != nil {
		return nil, err
	}

	if signingAlg == "" {
		signingAlg = defaultSigningAlg
	}

	output, err := cmdutils.GetUserSetVarFromString(cmd, outputFlagName, outputEnvKey, true)
	if err != nil {
		return nil, err
	}

	logLevel, err := getLogLevel(cmd)
	if err != nil {
		return nil, err
	}

	tracingProvider, err := cmdutils.GetUserSetVarFromString(cmd, tracingProviderFlagName, tracingProviderEnvKey, true)
	if err != nil {
		return nil, err
	}

	if !tracing.IsExporterSupported(tracingProvider) {
		return nil, fmt.Errorf("unsupported tracing provider: %s", tracingProvider)
	}

	metricsProvider, err := cmdutils.GetUserSetVarFromString(cmd, metricsProviderFlagName, metricsProviderEnvKey, true)
	if err != nil {
		return nil, err
	}

	if metricsProvider != "" && metricsProvider != prometheusProvider {
		return nil, fmt.Errorf("unsupported metrics provider: %s", metricsProvider)
	}

	redisParams, err := common.RedisParams(cmd)
	if err != nil {
		return nil, err
	}

	return &issueParameters{
		kind:            parsedKind,
		listID:          listID,
		issuer:          issuer,
		entries:         entries,
		storeOpts:       storeOpts,
		workers:         workers,
		signingKey:      signingKey,
		keyID:           keyID,
		signingAlg:      signingAlg,
		output:          output,
		logLevel:        logLevel,
		tracingProvider: tracingProvider,
		metricsProvider: metricsProvider,
		redis:           redisParams,
	}, nil
}

// nolint:gocyclo
func getStoreOpts(cmd *cobra.Command) ([]statuslist.Opt, error) {
	var opts []statuslist.Opt

	epoch, err := getInt(cmd, epochFlagName, epochEnvKey)
	if err != nil {
		return nil, err
	}

	if epoch != 0 {
		opts = append(opts, statuslist.WithEpoch(int64(epoch)))
	}

	hashAlg, err := cmdutils.GetUserSetVarFromString(cmd, hashAlgorithmFlagName, hashAlgorithmEnvKey, true)
	if err != nil {
		return nil, err
	}

	if hashAlg != "" {
		alg, parseErr := hashing.ParseHashAlgorithm(hashAlg)
		if parseErr != nil {
			return nil, parseErr
		}

		opts = append(opts, statuslist.WithHashAlgorithm(alg))
	}

	hmacAlg, err := cmdutils.GetUserSetVarFromString(cmd, hmacAlgorithmFlagName, hmacAlgorithmEnvKey, true)
	if err != nil {
		return nil, err
	}

	if hmacAlg != "" {
		alg, parseErr := hashing.ParseHMACAlgorithm(hmacAlg)
		if parseErr != nil {
			return nil, parseErr
		}

		opts = append(opts, statuslist.WithHMACAlgorithm(alg))
	}

	compressionAlg, err := cmdutils.GetUserSetVarFromString(cmd, compressionFlagName, compressionEnvKey, true)
	if err != nil {
		return nil, err
	}

	if compressionAlg != "" {
		c, newErr := compression.NewCompressor(compressionAlg)
		if newErr != nil {
			return nil, newErr
		}

		opts = append(opts, statuslist.WithCompressor(c))
	}

	capacity, err := getInt(cmd, capacityFlagName, capacityEnvKey)
	if err != nil {
		return nil, err
	}

	if capacity < 0 {
		return nil, fmt.Errorf("%s must not be negative", capacityFlagName)
	}

	if capacity > 0 {
		opts = append(opts, statuslist.WithCapacity(uint(capacity)))
	}

	falsePositive, err := cmdutils.GetUserSetVarFromString(cmd, falsePositiveFlagName, falsePositiveEnvKey, true)
	if err != nil {
		return nil, err
	}

	if falsePositive != "" {
		rate, parseErr := strconv.ParseFloat(falsePositive, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid %s: %w", falsePositiveFlagName, parseErr)
		}

		opts = append(opts, statuslist.WithFalsePositive(rate))
	}

	maxLayers, err := getInt(cmd, maxLayersFlagName, maxLayersEnvKey)
	if err != nil {
		return nil, err
	}

	if maxLayers != 0 {
		opts = append(opts, statuslist.WithMaxLayers(maxLayers))
	}

	strict, err := getBool(cmd, strictCascadeFlagName, strictCascadeEnvKey)
	if err != nil {
		return nil, err
	}

	if strict {
		opts = append(opts, statuslist.WithStrictCascade())
	}

	return opts, nil
}

func createTokenFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(secretPayloadFlagName, "s", "", secretPayloadFlagUsage)
	cmd.Flags().StringP(subjectFlagName, "", "", subjectFlagUsage)
	cmd.Flags().StringP(holderFlagName, "", "", holderFlagUsage)
	cmd.Flags().StringP(outputFlagName, "o", "", outputFlagUsage)
	createLogLevelFlag(cmd)
}

func getTokenParameters(cmd *cobra.Command) (*tokenParameters, error) {
	secretPayload, err := cmdutils.GetUserSetVarFromString(cmd, secretPayloadFlagName, secretPayloadEnvKey, false)
	if err != nil {
		return nil, err
	}

	subject, err := cmdutils.GetUserSetVarFromString(cmd, subjectFlagName, subjectEnvKey, true)
	if err != nil {
		return nil, err
	}

	holderID, err := cmdutils.GetUserSetVarFromString(cmd, holderFlagName, holderEnvKey, true)
	if err != nil {
		return nil, err
	}

	output, err := cmdutils.GetUserSetVarFromString(cmd, outputFlagName, outputEnvKey, true)
	if err != nil {
		return nil, err
	}

	logLevel, err := getLogLevel(cmd)
	if err != nil {
		return nil, err
	}

	return &tokenParameters{
		secretPayload: secretPayload,
		subject:       subject,
		holder:        holderID,
		output:        output,
		logLevel:      logLevel,
	}, nil
}

func createVerifyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(artifactFlagName, "a", "", artifactFlagUsage)
	cmd.Flags().StringP(listIDFlagName, "", "", listIDFlagUsage)
	cmd.Flags().StringP(tokenFlagName, "t", "", tokenFlagUsage)
	cmd.Flags().StringP(timeCheckFlagName, "", "", timeCheckFlagUsage)
	createLogLevelFlag(cmd)
	common.Flags(cmd)
}

func getVerifyParameters(cmd *cobra.Command) (*verifyParameters, error) {
	artifact, err := cmdutils.GetUserSetVarFromString(cmd, artifactFlagName, artifactEnvKey, true)
	if err != nil {
		return nil, err
	}

	listID, err := cmdutils.GetUserSetVarFromString(cmd, listIDFlagName, listIDEnvKey, true)
	if err != nil {
		return nil, err
	}

	token, err := cmdutils.GetUserSetVarFromString(cmd, tokenFlagName, tokenEnvKey, false)
	if err != nil {
		return nil, err
	}

	timeCheck, err := getBool(cmd, timeCheckFlagName, timeCheckEnvKey)
	if err != nil {
		return nil, err
	}

	logLevel, err := getLogLevel(cmd)
	if err != nil {
		return nil, err
	}

	redisParams, err := common.RedisParams(cmd)
	if err != nil {
		return nil, err
	}

	if artifact == "" && (listID == "" || redisParams.URL == "") {
		return nil, fmt.Errorf("either %s or both %s and %s must be set",
			artifactFlagName, listIDFlagName, common.RedisURLFlagName)
	}

	return &verifyParameters{
		artifact:  artifact,
		listID:    listID,
		token:     token,
		timeCheck: timeCheck,
		logLevel:  logLevel,
		redis:     redisParams,
	}, nil
}

func getInt(cmd *cobra.Command, flagName, envKey string) (int, error) {
	value, err := cmdutils.GetUserSetVarFromString(cmd, flagName, envKey, true)
	if err != nil || value == "" {
		return 0, err
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", flagName, err)
	}

	return n, nil
}

func getBool(cmd *cobra.Command, flagName, envKey string) (bool, error) {
	value, err := cmdutils.GetUserSetVarFromString(cmd, flagName, envKey, true)
	if err != nil || value == "" {
		return false, err
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", flagName, err)
	}

	return b, nil
}
