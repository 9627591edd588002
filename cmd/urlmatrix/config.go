// config.go: The config encrypt/decrypt subcommands.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/agilira/urlmatrix/configcrypt"
)

type keyFlags struct {
	keyHex     string
	ivHex      string
	passphrase string
	salt       string
}

func (k *keyFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&k.keyHex, "key", "k", "", "AES key as 32 hex characters (default built-in key)")
	flags.StringVarP(&k.ivHex, "iv", "v", "", "AES IV as 32 hex characters (default built-in IV)")
	flags.StringVar(&k.passphrase, "passphrase", "", "Derive key and IV from a passphrase (Argon2id)")
	flags.StringVar(&k.salt, "salt", "", "Salt for --passphrase")
	cmd.MarkFlagsMutuallyExclusive("passphrase", "key")
	cmd.MarkFlagsMutuallyExclusive("passphrase", "iv")
	cmd.MarkFlagsRequiredTogether("passphrase", "salt")
}

// resolve returns the key and IV selected by the flags.
func (k *keyFlags) resolve() (key, iv []byte, err error) {
	if k.passphrase != "" {
		return configcrypt.DeriveKeyIV([]byte(k.passphrase), []byte(k.salt))
	}
	key, iv = configcrypt.DefaultKey, configcrypt.DefaultIV
	if k.keyHex != "" {
		if key, err = configcrypt.ParseHexKey(k.keyHex); err != nil {
			return nil, nil, err
		}
	}
	if k.ivHex != "" {
		if iv, err = configcrypt.ParseHexKey(k.ivHex); err != nil {
			return nil, nil, err
		}
	}
	return key, iv, nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Encrypt or decrypt flat configuration files",
	}
	cmd.AddCommand(newConfigEncryptCmd(), newConfigDecryptCmd())
	return cmd
}

func newConfigEncryptCmd() *cobra.Command {
	var (
		keys   keyFlags
		input  string
		output string
		sample bool
	)
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a configuration file to base64",
		Example: `  urlmatrix config encrypt -i config.xml -o config.enc
  urlmatrix config encrypt --sample
  cat config.xml | urlmatrix config encrypt -k 00112233445566778899aabbccddeeff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := commandLogger(cmd, "urlmatrix.config", "")
			key, iv, err := keys.resolve()
			if err != nil {
				return err
			}

			var plaintext []byte
			if sample {
				plaintext = []byte(configcrypt.SampleConfig())
			} else if plaintext, err = readInput(cmd, input); err != nil {
				return err
			}

			encoded, err := configcrypt.Encrypt(plaintext, key, iv)
			if err != nil {
				return err
			}
			logger.Debug("configuration encrypted", "plaintext_bytes", len(plaintext), "encoded_bytes", len(encoded))
			if err := writeOutput(cmd, output, []byte(encoded+"\n")); err != nil {
				return err
			}
			if output != "" {
				reportf(cmd, "Encrypted configuration written to %s", output)
			}
			return nil
		},
	}
	keys.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (default stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&sample, "sample", false, "Encrypt the built-in sample configuration")
	cmd.MarkFlagsMutuallyExclusive("sample", "input")
	return cmd
}

func newConfigDecryptCmd() *cobra.Command {
	var (
		keys   keyFlags
		input  string
		output string
	)
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a base64 configuration file",
		Example: `  urlmatrix config decrypt -i config.enc
  urlmatrix config decrypt -i config.enc -o config.xml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := commandLogger(cmd, "urlmatrix.config", "")
			key, iv, err := keys.resolve()
			if err != nil {
				return err
			}
			encoded, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			plaintext, err := configcrypt.Decrypt(string(encoded), key, iv)
			if err != nil {
				return err
			}
			logger.Debug("configuration decrypted", "plaintext_bytes", len(plaintext))
			return writeOutput(cmd, output, plaintext)
		},
	}
	keys.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (default stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
