// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export renders closed election results as an xlsx workbook with a
// ranked "Results" sheet and a "Summary" sheet.
package export
