// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the terminal storefront runtime.
//
// It restores the saved session, keeps the signed-out cart in sync with the
// server in the background and hands control to the terminal UI.
package client
