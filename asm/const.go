// This file is part of the E80 assembler.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

// Configuration constants, grounded on original_source/Assembler/config.h.
const (
	MaxLineLength    = 150
	MaxLabels        = 200
	RAMSize          = 254
	MinFrequency     = 1
	MaxFrequency     = 1000
	DefaultFrequency = 15
	TemplateFileName = "Template.vhd"
	DefaultTitle     = "E80 ASSEMBLY PROGRAM"
)

const singleCharDelimiters = "[]\",:"

const eot = 0x04
