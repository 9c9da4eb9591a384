package urls

// arduino-cli documentation, https://arduino.github.io/arduino-cli/latest/

// ArduinoCLIInstall covers installing the arduino-cli binary.
const ArduinoCLIInstall = "https://arduino.github.io/arduino-cli/latest/installation/"

// ArduinoCLIGettingStarted covers installing board cores, which a compile
// needs before the board's FQBN is accepted.
const ArduinoCLIGettingStarted = "https://arduino.github.io/arduino-cli/latest/getting-started/"

// ArduinoCLICompile documents `arduino-cli compile`, including
// --build-property.
const ArduinoCLICompile = "https://arduino.github.io/arduino-cli/latest/commands/arduino-cli_compile/"

// ArduinoCLIBoardList documents `arduino-cli board list`.
const ArduinoCLIBoardList = "https://arduino.github.io/arduino-cli/latest/commands/arduino-cli_board_list/"
