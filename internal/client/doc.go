// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive application runtime.
//
// It wires the terminal UI, the optional local capture API and the
// background sync worker into a single process lifecycle.
package client
